package models

import (
	"time"

	"gorm.io/datatypes"
)

// DateLayout is the wire and label format for entry dates
const DateLayout = "2006-01-02"

// JournalEntry is one day's record. EntryDate is unique: one entry per calendar day.
type JournalEntry struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	EntryDate        datatypes.Date `gorm:"not null;uniqueIndex" json:"entryDate"`
	Title            string         `gorm:"size:256;not null;default:''" json:"title"`
	Content          string         `gorm:"type:text;not null" json:"content"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
	PrimaryMoodID    uint           `gorm:"not null;index" json:"primaryMoodId"`
	PrimaryMood      *Mood          `json:"primaryMood,omitempty"`
	SecondaryMood1ID *uint          `gorm:"column:secondary_mood1_id" json:"secondaryMood1Id"`
	SecondaryMood1   *Mood          `gorm:"foreignKey:SecondaryMood1ID" json:"secondaryMood1,omitempty"`
	SecondaryMood2ID *uint          `gorm:"column:secondary_mood2_id" json:"secondaryMood2Id"`
	SecondaryMood2   *Mood          `gorm:"foreignKey:SecondaryMood2ID" json:"secondaryMood2,omitempty"`
	CategoryID       *uint          `json:"categoryId,omitempty"`
	Category         *Category      `json:"-"`
	WordCount        int            `gorm:"not null;default:0" json:"wordCount"`
	EntryTags        []EntryTag     `gorm:"constraint:OnDelete:CASCADE" json:"entryTags,omitempty"`
}

// TableName overrides the table name for JournalEntry
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// Date returns the entry date as a time.Time at midnight UTC
func (e JournalEntry) Date() time.Time {
	return time.Time(e.EntryDate)
}

// DateLabel returns the entry date formatted as yyyy-MM-dd
func (e JournalEntry) DateLabel() string {
	return e.Date().Format(DateLayout)
}

// TagNames returns the names of the loaded tags in link order
func (e JournalEntry) TagNames() []string {
	names := make([]string, 0, len(e.EntryTags))
	for _, et := range e.EntryTags {
		if et.Tag != nil {
			names = append(names, et.Tag.Name)
		}
	}
	return names
}

// PrimaryMoodName returns the primary mood name, or "-" when it is not loaded
func (e JournalEntry) PrimaryMoodName() string {
	if e.PrimaryMood == nil {
		return "-"
	}
	return e.PrimaryMood.Name
}

// Category is carried in the schema for entries; nothing populates it yet
type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"size:128;not null" json:"name"`
}

// TableName overrides the table name for Category
func (Category) TableName() string {
	return "categories"
}
