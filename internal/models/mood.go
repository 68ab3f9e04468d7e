package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MoodCategory groups moods for analytics. The numeric order is the sort order.
type MoodCategory int

const (
	MoodPositive MoodCategory = iota
	MoodNeutral
	MoodNegative
)

// MoodCategories lists every category in sort order
var MoodCategories = []MoodCategory{MoodPositive, MoodNeutral, MoodNegative}

// String returns the display name of the category
func (c MoodCategory) String() string {
	switch c {
	case MoodPositive:
		return "Positive"
	case MoodNeutral:
		return "Neutral"
	case MoodNegative:
		return "Negative"
	}
	return fmt.Sprintf("MoodCategory(%d)", int(c))
}

// ParseMoodCategory parses a category name, ignoring case
func ParseMoodCategory(s string) (MoodCategory, error) {
	for _, c := range MoodCategories {
		if strings.EqualFold(c.String(), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown mood category %q", s)
}

// MarshalJSON writes the category as its name
func (c MoodCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts the category name
func (c *MoodCategory) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMoodCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Mood is seeded reference data. SeedKey identifies a seeded row across renames.
type Mood struct {
	ID       uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string       `gorm:"size:64;not null" json:"name"`
	Category MoodCategory `gorm:"not null;default:0" json:"category"`
	SeedKey  *string      `gorm:"size:64;uniqueIndex" json:"-"`
}

// TableName overrides the table name for Mood
func (Mood) TableName() string {
	return "moods"
}

// PlainName returns the name without its leading emoji annotation, if any
func (m Mood) PlainName() string {
	return PlainMoodName(m.Name)
}

// PlainMoodName strips everything up to and including the first space.
// Names without a space are returned as is.
func PlainMoodName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, " "); i >= 0 {
		return strings.TrimSpace(name[i+1:])
	}
	return name
}
