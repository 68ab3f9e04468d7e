package services

import (
	"strings"
	"time"

	"github.com/localnerve/moodjournal/internal/models"
)

// Clock returns the current local time. Tests substitute a fixed clock.
type Clock func() time.Time

// NormalizeDate keeps the calendar date of t, in t's own location, at midnight UTC.
// Every stored entry date uses this form so lookups compare equal on any dialect.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a yyyy-MM-dd date into its normalized form
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, &ValidationError{Field: "date", Message: "expected a date formatted as yyyy-MM-dd"}
	}
	return NormalizeDate(t), nil
}

// FormatDate formats a date as yyyy-MM-dd
func FormatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

// CountWords counts whitespace-delimited tokens
func CountWords(text string) int {
	return len(strings.Fields(text))
}
