// data.go
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

package testutil

import (
	"testing"
	"time"

	"github.com/localnerve/moodjournal/internal/database"
	"github.com/localnerve/moodjournal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens a private in-memory database, migrated and seeded
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	// Every connection to :memory: is a new database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Initialize(db); err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}

	return db
}

// FixedClock returns a clock stuck at t
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Day returns midnight UTC of the given date
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// MoodID returns the id of the seeded mood whose name ends with plain, e.g. "Happy"
func MoodID(t *testing.T, db *gorm.DB, plain string) uint {
	t.Helper()
	var moods []models.Mood
	if err := db.Find(&moods).Error; err != nil {
		t.Fatalf("Failed to load moods: %v", err)
	}
	for _, m := range moods {
		if m.PlainName() == plain {
			return m.ID
		}
	}
	t.Fatalf("Mood %q not seeded", plain)
	return 0
}

// CreateEntry inserts an entry for date directly, linking the named tags
func CreateEntry(t *testing.T, db *gorm.DB, date time.Time, moodID uint, words int, tagNames ...string) models.JournalEntry {
	t.Helper()

	entry := models.JournalEntry{
		EntryDate:     datatypes.Date(date),
		Title:         "Entry " + date.Format(models.DateLayout),
		Content:       wordsOf(words),
		PrimaryMoodID: moodID,
		WordCount:     words,
	}
	for _, name := range tagNames {
		var tag models.Tag
		if err := db.Where("name_key = ?", models.TagKey(name)).FirstOrCreate(&tag, models.Tag{Name: name}).Error; err != nil {
			t.Fatalf("Failed to create tag %s: %v", name, err)
		}
		entry.EntryTags = append(entry.EntryTags, models.EntryTag{TagID: tag.ID})
	}

	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}
	return entry
}

func wordsOf(n int) string {
	b := make([]byte, 0, n*5)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ' ')
		}
		b = append(b, "word"...)
	}
	return string(b)
}
