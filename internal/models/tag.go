package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Tag labels entries. NameKey is the lower-cased name and carries the uniqueness constraint.
type Tag struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string    `gorm:"size:128;not null" json:"name"`
	NameKey    string    `gorm:"size:128;not null;uniqueIndex" json:"-"`
	IsPrebuilt bool      `gorm:"not null;default:false" json:"isPrebuilt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TableName overrides the table name for Tag
func (Tag) TableName() string {
	return "tags"
}

// BeforeSave keeps NameKey in step with Name
func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.NameKey = TagKey(t.Name)
	return nil
}

// TagKey is the case-insensitive identity of a tag name
func TagKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// EntryTag links an entry to a tag. Rows belong to the entry.
type EntryTag struct {
	JournalEntryID uint `gorm:"primaryKey;autoIncrement:false" json:"-"`
	TagID          uint `gorm:"primaryKey;autoIncrement:false;index" json:"tagId"`
	Tag            *Tag `gorm:"constraint:OnDelete:CASCADE" json:"tag,omitempty"`
}

// TableName overrides the table name for EntryTag
func (EntryTag) TableName() string {
	return "entry_tags"
}
