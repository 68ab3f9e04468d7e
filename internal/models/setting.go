package models

import (
	"strings"
	"time"
)

// SettingsID is the fixed primary key of the singleton settings row
const SettingsID uint = 1

// AppSetting is the singleton settings row
type AppSetting struct {
	ID          uint      `gorm:"primaryKey;autoIncrement:false" json:"id"`
	PinHash     *string   `gorm:"size:128" json:"-"`
	Preferences JSON      `json:"preferences"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName overrides the table name for AppSetting
func (AppSetting) TableName() string {
	return "app_settings"
}

// HasPin reports whether a non-blank PIN digest is stored
func (s AppSetting) HasPin() bool {
	return s.PinHash != nil && strings.TrimSpace(*s.PinHash) != ""
}
