package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/services"
)

// ExportHandler renders entries to PDF
type ExportHandler struct {
	Journal  *services.Journal
	Exporter *services.Exporter
}

// ExportPDF handles GET /api/export/pdf?start=&end=
// @Summary Export entries to PDF
// @Description Render the entries of a date range as a PDF attachment. Defaults to the last 30 days.
// @Tags Export
// @Produce application/pdf
// @Param start query string false "First date, yyyy-MM-dd"
// @Param end query string false "Last date, yyyy-MM-dd"
// @Success 200 {file} file
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /export/pdf [get]
func (h *ExportHandler) ExportPDF(c *fiber.Ctx) error {
	start, end, err := dateRange(c, h.Journal.Today())
	if err != nil {
		return serviceError(c, err, "exportPdf")
	}

	entries, err := h.Journal.GetEntriesInRange(start, end)
	if err != nil {
		return serviceError(c, err, "exportPdf")
	}

	doc, err := h.Exporter.JournalPDF(entries, start, end)
	if err != nil {
		return serviceError(c, err, "exportPdf")
	}

	name := fmt.Sprintf("journal_%s_%s.pdf", services.FormatDate(start), services.FormatDate(end))
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Status(fiber.StatusOK).Send(doc)
}
