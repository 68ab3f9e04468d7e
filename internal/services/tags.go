package services

import (
	"errors"
	"strings"

	"github.com/localnerve/moodjournal/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// NormalizeTagNames trims names, drops blanks and removes case-insensitive
// duplicates. The first spelling of each name wins.
func NormalizeTagNames(raw []string) []string {
	seen := make(map[string]bool, len(raw))
	names := make([]string, 0, len(raw))
	for _, name := range raw {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		key := models.TagKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		names = append(names, name)
	}
	return names
}

// resolveTags maps each name to an existing tag, matched ignoring case, or a new one
func resolveTags(tx *gorm.DB, raw []string) ([]models.Tag, error) {
	names := NormalizeTagNames(raw)
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		tag, err := findOrCreateTag(tx, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

// findOrCreateTag inserts with ON CONFLICT DO NOTHING on name_key, so a concurrent
// writer that wins the insert is picked up by the fetch that follows.
func findOrCreateTag(tx *gorm.DB, name string) (models.Tag, error) {
	key := models.TagKey(name)
	quiet := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)})

	var found models.Tag
	err := quiet.Where("name_key = ?", key).Take(&found).Error
	if err == nil {
		return found, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return found, err
	}

	tag := models.Tag{Name: name}
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name_key"}},
		DoNothing: true,
	}).Create(&tag)
	if result.Error != nil {
		return tag, result.Error
	}
	if result.RowsAffected > 0 && tag.ID != 0 {
		return tag, nil
	}

	var winner models.Tag
	if err := tx.Where("name_key = ?", key).Take(&winner).Error; err != nil {
		return winner, err
	}
	return winner, nil
}
