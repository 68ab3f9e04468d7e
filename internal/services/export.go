package services

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/localnerve/moodjournal/internal/metrics"
	"github.com/localnerve/moodjournal/internal/models"
	"golang.org/x/net/html"
)

// Exporter renders journal entries as a PDF document
type Exporter struct {
	Clock Clock
	// Compress deflates page streams. Off leaves the text searchable in the raw bytes.
	Compress bool
}

// NewExporter returns an Exporter on the local clock with compression on
func NewExporter() *Exporter {
	return &Exporter{Clock: time.Now, Compress: true}
}

// JournalPDF renders entries, oldest first, under a header naming the date range.
// Entries should carry their primary mood and tags.
func (x *Exporter) JournalPDF(entries []models.JournalEntry, start, end time.Time) ([]byte, error) {
	now := time.Now
	if x.Clock != nil {
		now = x.Clock
	}
	generated := FormatDate(now())

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(x.Compress)
	pdf.SetTitle("Journal Export", true)
	pdf.SetMargins(10.5, 10.5, 10.5)
	pdf.SetAutoPageBreak(true, 18)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	width := pageWidth - left - right

	rule := func(weight float64) {
		pdf.SetLineWidth(weight)
		y := pdf.GetY()
		pdf.Line(left, y, left+width, y)
		pdf.Ln(2)
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 20)
		pdf.CellFormat(width, 10, "Journal Export", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(width, 7, tr(fmt.Sprintf("Date Range: %s -> %s", FormatDate(start), FormatDate(end))), "", 1, "L", false, 0, "")
		rule(0.35)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(width, 8, "Generated on "+generated, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 11)

	if len(entries) == 0 {
		pdf.CellFormat(width, 7, "No entries found in selected range.", "", 1, "L", false, 0, "")
	}

	ordered := append([]models.JournalEntry(nil), entries...)
	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Date().Before(ordered[b].Date())
	})

	for _, e := range ordered {
		pdf.Ln(3)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.MultiCell(width, 7, tr(e.DateLabel()+"  |  "+e.Title), "", "L", false)

		pdf.SetFont("Helvetica", "", 11)
		mood := "-"
		if e.PrimaryMood != nil {
			mood = e.PrimaryMood.PlainName()
		}
		pdf.CellFormat(width, 6, tr("Primary Mood: "+mood), "", 1, "L", false, 0, "")
		pdf.CellFormat(width, 6, fmt.Sprintf("Word Count: %d", e.WordCount), "", 1, "L", false, 0, "")

		tags := "-"
		if names := e.TagNames(); len(names) > 0 {
			tags = strings.Join(names, ", ")
		}
		pdf.MultiCell(width, 6, tr("Tags: "+tags), "", "L", false)

		pdf.Ln(1)
		pdf.SetFillColor(245, 245, 245)
		pdf.MultiCell(width, 5.5, tr(PlainText(e.Content)), "", "L", true)
		pdf.Ln(3)
		rule(0.2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	metrics.PDFExports.Inc()
	return buf.Bytes(), nil
}

// blockTags end a line of text when they open or close
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true,
}

// PlainText reduces rich-text HTML to plain text, one line per block element
func PlainText(content string) string {
	if !strings.ContainsAny(content, "<&") {
		return strings.TrimSpace(content)
	}

	var (
		b     strings.Builder
		skip  int
		lines []string
	)
	flush := func() {
		line := strings.Join(strings.Fields(b.String()), " ")
		if line != "" {
			lines = append(lines, line)
		}
		b.Reset()
	}

	z := html.NewTokenizer(strings.NewReader(content))
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if z.Err() != io.EOF {
				return strings.TrimSpace(content)
			}
			flush()
			return strings.Join(lines, "\n")

		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}

		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			tag := string(name)
			if tag == "script" || tag == "style" {
				if tt == html.StartTagToken {
					skip++
				} else if tt == html.EndTagToken && skip > 0 {
					skip--
				}
				continue
			}
			if blockTags[tag] {
				flush()
			}
		}
	}
}
