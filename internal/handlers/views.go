package handlers

import (
	"time"

	"github.com/localnerve/moodjournal/internal/models"
)

// EntryView is the wire form of a journal entry, dates as yyyy-MM-dd
type EntryView struct {
	ID             uint         `json:"id"`
	Date           string       `json:"date"`
	Title          string       `json:"title"`
	Content        string       `json:"content"`
	WordCount      int          `json:"wordCount"`
	PrimaryMoodID  uint         `json:"primaryMoodId"`
	PrimaryMood    *models.Mood `json:"primaryMood,omitempty"`
	SecondaryMood1 *models.Mood `json:"secondaryMood1,omitempty"`
	SecondaryMood2 *models.Mood `json:"secondaryMood2,omitempty"`
	Tags           []string     `json:"tags"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// StreakView is the wire form of streak statistics
type StreakView struct {
	Current      int      `json:"current"`
	Longest      int      `json:"longest"`
	MissedDays   []string `json:"missedDays"`
	LookbackDays int      `json:"lookbackDays"`
}

// SecurityStatus reports whether a PIN is set and the session lock state
type SecurityStatus struct {
	HasPin bool   `json:"hasPin"`
	State  string `json:"state"`
	Locked bool   `json:"locked"`
}

// ThemeView carries the UI theme
type ThemeView struct {
	Theme string `json:"theme"`
}

func entryView(e models.JournalEntry) EntryView {
	return EntryView{
		ID:             e.ID,
		Date:           e.DateLabel(),
		Title:          e.Title,
		Content:        e.Content,
		WordCount:      e.WordCount,
		PrimaryMoodID:  e.PrimaryMoodID,
		PrimaryMood:    e.PrimaryMood,
		SecondaryMood1: e.SecondaryMood1,
		SecondaryMood2: e.SecondaryMood2,
		Tags:           e.TagNames(),
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

func entryViews(entries []models.JournalEntry) []EntryView {
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, entryView(e))
	}
	return views
}
