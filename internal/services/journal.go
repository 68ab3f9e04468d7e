// journal.go
//
// A local-first mood journal data service
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of moodjournal.
// moodjournal is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// moodjournal is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with moodjournal.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package services

import (
	"errors"
	"time"

	"github.com/localnerve/moodjournal/internal/metrics"
	"github.com/localnerve/moodjournal/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// EntryInput is the editable content of today's entry
type EntryInput struct {
	Title            string   `json:"title"`
	Content          string   `json:"content"`
	PrimaryMoodID    uint     `json:"primaryMoodId"`
	SecondaryMood1ID *uint    `json:"secondaryMood1Id"`
	SecondaryMood2ID *uint    `json:"secondaryMood2Id"`
	Tags             []string `json:"tags"`
}

// Journal reads and writes journal entries, moods and tags
type Journal struct {
	DB    *gorm.DB
	Clock Clock
	// MaxLookback caps streak windows in days; zero means DefaultMaxStreakLookback
	MaxLookback int
}

// NewJournal creates a Journal on the local clock
func NewJournal(db *gorm.DB) *Journal {
	return &Journal{DB: db, Clock: time.Now}
}

func (j *Journal) now() time.Time {
	if j.Clock == nil {
		return time.Now()
	}
	return j.Clock()
}

// Today returns the normalized local calendar date
func (j *Journal) Today() time.Time {
	return NormalizeDate(j.now())
}

// quiet returns a session that does not log record-not-found lookups
func (j *Journal) quiet() *gorm.DB {
	return j.DB.Session(&gorm.Session{Logger: j.DB.Logger.LogMode(logger.Silent)})
}

// withEntryDetail eager-loads every mood and the tags of an entry
func withEntryDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("PrimaryMood").
		Preload("SecondaryMood1").
		Preload("SecondaryMood2").
		Preload("EntryTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_tags.tag_id")
		}).
		Preload("EntryTags.Tag")
}

// ListMoods returns every mood ordered by category then name
func (j *Journal) ListMoods() ([]models.Mood, error) {
	var moods []models.Mood
	if err := j.DB.Order("category ASC").Order("name ASC").Find(&moods).Error; err != nil {
		return nil, err
	}
	return moods, nil
}

// ListTags returns prebuilt tags first, then the rest, each group alphabetical
func (j *Journal) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	if err := j.DB.Order("is_prebuilt DESC").Order("name ASC").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetEntryByDate loads the entry for the calendar date of date with moods and tags
func (j *Journal) GetEntryByDate(date time.Time) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	err := withEntryDetail(j.quiet()).
		Where("entry_date = ?", datatypes.Date(NormalizeDate(date))).
		Take(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpsertToday creates today's entry, or replaces its content, moods and tags in place
func (j *Journal) UpsertToday(in EntryInput) (*models.JournalEntry, error) {
	if in.PrimaryMoodID == 0 {
		return nil, &ValidationError{Field: "primaryMoodId", Message: "a primary mood is required"}
	}

	now := j.now()
	today := datatypes.Date(NormalizeDate(now))
	stamp := now.UTC()
	words := CountWords(in.Content)

	var (
		saved   models.JournalEntry
		created bool
	)

	err := j.DB.Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, in.Tags)
		if err != nil {
			return err
		}

		var existing models.JournalEntry
		err = tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			Where("entry_date = ?", today).
			Take(&existing).Error

		var entryID uint
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			entry := models.JournalEntry{
				EntryDate:        today,
				Title:            in.Title,
				Content:          in.Content,
				CreatedAt:        stamp,
				UpdatedAt:        stamp,
				PrimaryMoodID:    in.PrimaryMoodID,
				SecondaryMood1ID: in.SecondaryMood1ID,
				SecondaryMood2ID: in.SecondaryMood2ID,
				WordCount:        words,
				EntryTags:        tagLinks(0, tags),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
			entryID = entry.ID
			created = true

		case err != nil:
			return err

		default:
			entryID = existing.ID
			updates := map[string]interface{}{
				"title":              in.Title,
				"content":            in.Content,
				"primary_mood_id":    in.PrimaryMoodID,
				"secondary_mood1_id": in.SecondaryMood1ID,
				"secondary_mood2_id": in.SecondaryMood2ID,
				"word_count":         words,
				"updated_at":         stamp,
			}
			if err := tx.Model(&models.JournalEntry{}).Where("id = ?", entryID).Updates(updates).Error; err != nil {
				return err
			}
			if err := tx.Where("journal_entry_id = ?", entryID).Delete(&models.EntryTag{}).Error; err != nil {
				return err
			}
			if links := tagLinks(entryID, tags); len(links) > 0 {
				if err := tx.Create(&links).Error; err != nil {
					return err
				}
			}
		}

		return withEntryDetail(tx).Where("id = ?", entryID).Take(&saved).Error
	})
	if err != nil {
		log.Error().Err(err).Str("date", FormatDate(time.Time(today))).Msg("failed to save entry")
		return nil, persistenceFailure("save entry", err)
	}

	outcome := "updated"
	if created {
		outcome = "created"
	}
	metrics.EntriesSaved.WithLabelValues(outcome).Inc()
	log.Debug().Str("date", saved.DateLabel()).Str("outcome", outcome).Int("words", words).Msg("entry saved")

	return &saved, nil
}

// DeleteEntryByDate removes the entry for the calendar date of date and its tag links
func (j *Journal) DeleteEntryByDate(date time.Time) error {
	day := datatypes.Date(NormalizeDate(date))

	err := j.DB.Transaction(func(tx *gorm.DB) error {
		var entry models.JournalEntry
		err := tx.Session(&gorm.Session{Logger: tx.Logger.LogMode(logger.Silent)}).
			Where("entry_date = ?", day).
			Take(&entry).Error
		if err != nil {
			return err
		}
		if err := tx.Where("journal_entry_id = ?", entry.ID).Delete(&models.EntryTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.JournalEntry{}, entry.ID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrEntryNotFound
	}
	if err != nil {
		log.Error().Err(err).Str("date", FormatDate(time.Time(day))).Msg("failed to delete entry")
		return persistenceFailure("delete entry", err)
	}

	metrics.EntriesDeleted.Inc()
	return nil
}

func tagLinks(entryID uint, tags []models.Tag) []models.EntryTag {
	links := make([]models.EntryTag, 0, len(tags))
	for _, tag := range tags {
		links = append(links, models.EntryTag{JournalEntryID: entryID, TagID: tag.ID})
	}
	return links
}
