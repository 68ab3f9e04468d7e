package services

import (
	"strings"
	"time"

	"github.com/localnerve/moodjournal/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPageSize applies when a caller passes a non-positive page size
const DefaultPageSize = 10

// FilterOptions narrows the entry list. Zero values are ignored.
type FilterOptions struct {
	Start   *time.Time
	End     *time.Time
	MoodID  int
	TagText string
}

// likeEscaper escapes LIKE wildcards with '!' which every supported dialect accepts
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_", "[", "![")

func containsPattern(text string) string {
	return "%" + likeEscaper.Replace(text) + "%"
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("entry_date DESC")
}

// GetPaged returns one page of entries, newest first, with the primary mood loaded.
// Pages start at 1.
func (j *Journal) GetPaged(page, pageSize int) ([]models.JournalEntry, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	var entries []models.JournalEntry
	err := newestFirst(j.DB.Preload("PrimaryMood")).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Search returns entries whose title or content contains query, newest first.
// Matching is case-sensitive; an empty query matches every entry.
func (j *Journal) Search(query string) ([]models.JournalEntry, error) {
	db := newestFirst(j.DB.Preload("PrimaryMood"))
	if query != "" {
		pattern := containsPattern(query)
		db = db.Where("(title LIKE ? ESCAPE '!' OR content LIKE ? ESCAPE '!')", pattern, pattern)
	}

	var candidates []models.JournalEntry
	if err := db.Find(&candidates).Error; err != nil {
		return nil, err
	}
	if query == "" {
		return candidates, nil
	}

	// LIKE folds case on some dialects
	entries := candidates[:0]
	for _, e := range candidates {
		if strings.Contains(e.Title, query) || strings.Contains(e.Content, query) {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// GetEntriesInRange returns entries dated within [start, end], newest first,
// with the primary mood and tags loaded
func (j *Journal) GetEntriesInRange(start, end time.Time) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := newestFirst(j.DB).
		Preload("PrimaryMood").
		Preload("EntryTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_tags.tag_id")
		}).
		Preload("EntryTags.Tag").
		Where("entry_date BETWEEN ? AND ?", datatypes.Date(NormalizeDate(start)), datatypes.Date(NormalizeDate(end))).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Filter returns entries matching every given option, newest first.
// MoodID matches the primary mood; TagText matches any attached tag name ignoring case.
// Tags are matched on name_key, which Go lower-cases, so folding covers non-ASCII letters.
func (j *Journal) Filter(opts FilterOptions) ([]models.JournalEntry, error) {
	db := newestFirst(j.DB).
		Preload("PrimaryMood").
		Preload("EntryTags", func(db *gorm.DB) *gorm.DB {
			return db.Order("entry_tags.tag_id")
		}).
		Preload("EntryTags.Tag")

	if opts.Start != nil {
		db = db.Where("entry_date >= ?", datatypes.Date(NormalizeDate(*opts.Start)))
	}
	if opts.End != nil {
		db = db.Where("entry_date <= ?", datatypes.Date(NormalizeDate(*opts.End)))
	}
	if opts.MoodID > 0 {
		db = db.Where("primary_mood_id = ?", opts.MoodID)
	}
	if tagText := strings.TrimSpace(opts.TagText); tagText != "" {
		db = db.Where(
			"EXISTS (SELECT 1 FROM entry_tags et JOIN tags t ON t.id = et.tag_id "+
				"WHERE et.journal_entry_id = journal_entries.id AND t.name_key LIKE ? ESCAPE '!')",
			containsPattern(models.TagKey(tagText)),
		)
	}

	var entries []models.JournalEntry
	if err := db.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
