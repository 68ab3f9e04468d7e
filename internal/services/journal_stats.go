package services

import (
	"math"
	"sort"
	"time"

	"github.com/localnerve/moodjournal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/hints"
)

// DefaultStreakLookback is the streak window in days when none is configured
const DefaultStreakLookback = 60

// DefaultMaxStreakLookback is the longest streak window in days when none is configured
const DefaultMaxStreakLookback = 3660

// StreakStats describes journaling consistency over a lookback window
type StreakStats struct {
	Current    int         `json:"current"`
	Longest    int         `json:"longest"`
	MissedDays []time.Time `json:"-"`
}

// MissedLabels returns the missed days formatted as yyyy-MM-dd
func (s StreakStats) MissedLabels() []string {
	labels := make([]string, 0, len(s.MissedDays))
	for _, d := range s.MissedDays {
		labels = append(labels, FormatDate(d))
	}
	return labels
}

// TagCount is the number of entries carrying a tag
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendPoint is one labelled value of a trend series
type TrendPoint struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Analytics aggregates the entries of a date range
type Analytics struct {
	MoodCategoryCounts map[string]int `json:"moodCategoryCounts"`
	MostFrequentMood   string         `json:"mostFrequentMood"`
	TagCounts          []TagCount     `json:"tagCounts"`
	WordTrend          []TrendPoint   `json:"wordTrend"`
}

// MaxStreakLookback returns the longest streak window GetStreakStats will walk
func (j *Journal) MaxStreakLookback() int {
	if j.MaxLookback > 0 {
		return j.MaxLookback
	}
	return DefaultMaxStreakLookback
}

// GetStreakStats computes streaks over [today - lookbackDays, today].
// A negative lookback uses DefaultStreakLookback; one above MaxStreakLookback is clamped to it.
func (j *Journal) GetStreakStats(lookbackDays int) (StreakStats, error) {
	if lookbackDays < 0 {
		lookbackDays = DefaultStreakLookback
	}
	lookbackDays = min(lookbackDays, j.MaxStreakLookback())
	to := j.Today()
	from := to.AddDate(0, 0, -lookbackDays)

	var dates []datatypes.Date
	err := j.DB.Model(&models.JournalEntry{}).
		Clauses(hints.Comment("select", "streak")).
		Where("entry_date BETWEEN ? AND ?", datatypes.Date(from), datatypes.Date(to)).
		Distinct("entry_date").
		Pluck("entry_date", &dates).Error
	if err != nil {
		return StreakStats{}, err
	}

	present := make(map[time.Time]bool, len(dates))
	for _, d := range dates {
		present[NormalizeDate(time.Time(d))] = true
	}
	return ComputeStreaks(from, to, present), nil
}

// ComputeStreaks walks [from, to] day by day. Current counts back from to and
// stops at the first missing day.
func ComputeStreaks(from, to time.Time, present map[time.Time]bool) StreakStats {
	stats := StreakStats{MissedDays: []time.Time{}}

	run := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if present[d] {
			run++
			stats.Longest = max(stats.Longest, run)
			continue
		}
		run = 0
		stats.MissedDays = append(stats.MissedDays, d)
	}

	for d := to; !d.Before(from) && present[d]; d = d.AddDate(0, 0, -1) {
		stats.Current++
	}

	return stats
}

// GetAnalytics aggregates the entries dated within [start, end]
func (j *Journal) GetAnalytics(start, end time.Time) (Analytics, error) {
	var entries []models.JournalEntry
	err := j.DB.
		Clauses(hints.Comment("select", "analytics")).
		Preload("PrimaryMood").
		Preload("EntryTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_tags.tag_id")
		}).
		Preload("EntryTags.Tag").
		Where("entry_date BETWEEN ? AND ?", datatypes.Date(NormalizeDate(start)), datatypes.Date(NormalizeDate(end))).
		Order("entry_date ASC").
		Find(&entries).Error
	if err != nil {
		return Analytics{}, err
	}
	return ComputeAnalytics(entries), nil
}

// ComputeAnalytics aggregates entries given in ascending date order.
// Ties keep the order in which names were first seen.
func ComputeAnalytics(entries []models.JournalEntry) Analytics {
	out := Analytics{
		MoodCategoryCounts: map[string]int{},
		MostFrequentMood:   "-",
		TagCounts:          []TagCount{},
		WordTrend:          []TrendPoint{},
	}
	for _, c := range models.MoodCategories {
		out.MoodCategoryCounts[c.String()] = 0
	}

	var (
		moodOrder []string
		moodSeen  = map[string]int{}
		tagIndex  = map[string]int{}
	)

	for _, e := range entries {
		category := models.MoodNeutral
		if e.PrimaryMood != nil {
			category = e.PrimaryMood.Category
			if _, ok := moodSeen[e.PrimaryMood.Name]; !ok {
				moodOrder = append(moodOrder, e.PrimaryMood.Name)
			}
			moodSeen[e.PrimaryMood.Name]++
		}
		out.MoodCategoryCounts[category.String()]++

		for _, name := range e.TagNames() {
			i, ok := tagIndex[name]
			if !ok {
				i = len(out.TagCounts)
				tagIndex[name] = i
				out.TagCounts = append(out.TagCounts, TagCount{Name: name})
			}
			out.TagCounts[i].Count++
		}
	}

	best := 0
	for _, name := range moodOrder {
		if moodSeen[name] > best {
			best = moodSeen[name]
			out.MostFrequentMood = name
		}
	}

	sort.SliceStable(out.TagCounts, func(a, b int) bool {
		return out.TagCounts[a].Count > out.TagCounts[b].Count
	})

	out.WordTrend = wordTrend(entries)
	return out
}

func wordTrend(entries []models.JournalEntry) []TrendPoint {
	type bucket struct {
		label string
		sum   int
		n     int
	}
	var buckets []*bucket
	byLabel := map[string]*bucket{}

	for _, e := range entries {
		label := e.DateLabel()
		b, ok := byLabel[label]
		if !ok {
			b = &bucket{label: label}
			byLabel[label] = b
			buckets = append(buckets, b)
		}
		b.sum += e.WordCount
		b.n++
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].label < buckets[b].label
	})

	points := make([]TrendPoint, 0, len(buckets))
	for _, b := range buckets {
		avg := math.RoundToEven(float64(b.sum) / float64(b.n))
		points = append(points, TrendPoint{Label: b.label, Value: int(avg)})
	}
	return points
}
