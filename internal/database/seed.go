package database

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/localnerve/moodjournal/data"
	"github.com/localnerve/moodjournal/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SeedMood is one row of the embedded mood vocabulary
type SeedMood struct {
	Key      string              `json:"key"`
	Name     string              `json:"name"`
	Category models.MoodCategory `json:"category"`
}

// SeedReport summarizes what a Seed run changed
type SeedReport struct {
	SettingsCreated bool
	MoodsCreated    int
	MoodsRenamed    int
	TagsCreated     int
}

// SeedMoods decodes the embedded mood vocabulary
func SeedMoods() ([]SeedMood, error) {
	var moods []SeedMood
	if err := json.Unmarshal(data.SeedMoods, &moods); err != nil {
		return nil, fmt.Errorf("invalid mood seed data: %w", err)
	}
	return moods, nil
}

// SeedTagNames returns the embedded prebuilt tag vocabulary
func SeedTagNames() []string {
	var names []string
	for _, line := range strings.Split(data.SeedTags, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names
}

// Seed creates the settings row, creates or renames the seeded moods and
// creates the prebuilt tags when the tag table is empty. It is idempotent.
func Seed(db *gorm.DB) (SeedReport, error) {
	var report SeedReport

	seedMoods, err := SeedMoods()
	if err != nil {
		return report, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var settingsRows int64
		if err := tx.Model(&models.AppSetting{}).Where("id = ?", models.SettingsID).Count(&settingsRows).Error; err != nil {
			return err
		}
		if settingsRows == 0 {
			if err := tx.Create(&models.AppSetting{ID: models.SettingsID}).Error; err != nil {
				return err
			}
			report.SettingsCreated = true
		}

		created, renamed, err := seedMoodRows(tx, seedMoods)
		if err != nil {
			return err
		}
		report.MoodsCreated, report.MoodsRenamed = created, renamed

		report.TagsCreated, err = seedTagRows(tx, SeedTagNames())
		return err
	})
	if err != nil {
		return report, err
	}

	log.Info().
		Bool("settings_created", report.SettingsCreated).
		Int("moods_created", report.MoodsCreated).
		Int("moods_renamed", report.MoodsRenamed).
		Int("tags_created", report.TagsCreated).
		Msg("seed complete")

	return report, nil
}

// seedMoodRows matches seeded moods by seed key. Rows that predate seed keys are
// matched once by the text after the first space of their name, then stamped with
// the key so later runs are exact.
func seedMoodRows(tx *gorm.DB, seeds []SeedMood) (created, renamed int, err error) {
	var existing []models.Mood
	if err := tx.Order("id").Find(&existing).Error; err != nil {
		return 0, 0, err
	}

	claimed := make(map[uint]bool)
	for _, seed := range seeds {
		match := findSeededMood(existing, claimed, seed)

		if match == nil {
			key := seed.Key
			mood := models.Mood{Name: seed.Name, Category: seed.Category, SeedKey: &key}
			if err := tx.Create(&mood).Error; err != nil {
				return created, renamed, err
			}
			created++
			continue
		}

		claimed[match.ID] = true
		keyMissing := match.SeedKey == nil || *match.SeedKey != seed.Key
		if match.Name == seed.Name && match.Category == seed.Category && !keyMissing {
			continue
		}

		updates := map[string]interface{}{
			"name":     seed.Name,
			"category": seed.Category,
			"seed_key": seed.Key,
		}
		if err := tx.Model(&models.Mood{}).Where("id = ?", match.ID).Updates(updates).Error; err != nil {
			return created, renamed, err
		}
		renamed++
	}

	return created, renamed, nil
}

func findSeededMood(existing []models.Mood, claimed map[uint]bool, seed SeedMood) *models.Mood {
	for i := range existing {
		m := &existing[i]
		if !claimed[m.ID] && m.SeedKey != nil && *m.SeedKey == seed.Key {
			return m
		}
	}

	plain := models.PlainMoodName(seed.Name)
	for i := range existing {
		m := &existing[i]
		if claimed[m.ID] || m.SeedKey != nil {
			continue
		}
		if strings.EqualFold(m.PlainName(), plain) || strings.EqualFold(strings.TrimSpace(m.Name), plain) {
			return m
		}
	}

	return nil
}

func seedTagRows(tx *gorm.DB, names []string) (int, error) {
	var count int64
	if err := tx.Model(&models.Tag{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, models.Tag{Name: name, IsPrebuilt: true})
	}
	if len(tags) == 0 {
		return 0, nil
	}
	if err := tx.Create(&tags).Error; err != nil {
		return 0, err
	}
	return len(tags), nil
}
