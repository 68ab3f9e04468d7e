package services

import (
	"errors"
	"strings"

	"github.com/localnerve/moodjournal/internal/models"
	"gorm.io/gorm"
)

// Themes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const themeKey = "theme"

// Settings reads and writes user preferences on the settings row
type Settings struct {
	DB *gorm.DB
}

// GetTheme returns the saved theme, light when none is saved
func (s *Settings) GetTheme() (string, error) {
	var row models.AppSetting
	err := s.DB.Where("id = ?", models.SettingsID).Limit(1).Find(&row).Error
	if err != nil {
		return "", err
	}
	return themeOf(row)
}

// SetTheme saves theme, which must be light or dark
func (s *Settings) SetTheme(theme string) (string, error) {
	theme = strings.ToLower(strings.TrimSpace(theme))
	if theme != ThemeLight && theme != ThemeDark {
		return "", &ValidationError{Field: "theme", Message: "must be light or dark"}
	}
	err := s.update(func(string) string { return theme })
	if err != nil {
		return "", err
	}
	return theme, nil
}

// ToggleTheme flips between light and dark and returns the new theme
func (s *Settings) ToggleTheme() (string, error) {
	var next string
	err := s.update(func(current string) string {
		next = ThemeDark
		if current == ThemeDark {
			next = ThemeLight
		}
		return next
	})
	if err != nil {
		return "", err
	}
	return next, nil
}

func (s *Settings) update(change func(current string) string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var row models.AppSetting
		result := tx.Where("id = ?", models.SettingsID).Limit(1).Find(&row)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			row = models.AppSetting{ID: models.SettingsID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		prefs, err := row.Preferences.Map()
		if err != nil {
			return err
		}
		current, _ := themeOf(row)
		prefs[themeKey] = change(current)

		doc, err := models.JSONFromMap(prefs)
		if err != nil {
			return err
		}
		return tx.Model(&models.AppSetting{}).Where("id = ?", models.SettingsID).Update("preferences", doc).Error
	})
	if err != nil {
		return persistenceFailure("save preferences", err)
	}
	return nil
}

func themeOf(row models.AppSetting) (string, error) {
	prefs, err := row.Preferences.Map()
	if err != nil {
		return "", errors.New("stored preferences are not a JSON object")
	}
	if theme, ok := prefs[themeKey].(string); ok && (theme == ThemeLight || theme == ThemeDark) {
		return theme, nil
	}
	return ThemeLight, nil
}
