package services

import (
	"testing"
	"time"

	"github.com/localnerve/moodjournal/internal/models"
	"github.com/localnerve/moodjournal/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func day(year int, month time.Month, d int) datatypes.Date {
	return datatypes.Date(testutil.Day(year, month, d))
}

func TestGetStreakStats(t *testing.T) {
	today := testutil.Day(2026, time.July, 20)
	j, db := newTestJournal(t, today.Add(20*time.Hour))
	happy := testutil.MoodID(t, db, "Happy")

	for _, back := range []int{0, 1, 2, 4, 5} {
		testutil.CreateEntry(t, db, today.AddDate(0, 0, -back), happy, 5)
	}
	// outside the window
	testutil.CreateEntry(t, db, today.AddDate(0, 0, -30), happy, 5)

	stats, err := j.GetStreakStats(10)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Current)
	assert.Equal(t, 3, stats.Longest)

	missed := stats.MissedLabels()
	assert.Len(t, missed, 11-5)
	assert.Equal(t, "2026-07-10", missed[0])
	assert.Contains(t, missed, "2026-07-17")
	assert.NotContains(t, missed, "2026-07-20")
}

func TestGetStreakStats_LookbackClamped(t *testing.T) {
	today := testutil.Day(2026, time.July, 20)
	j, db := newTestJournal(t, today)
	j.MaxLookback = 30
	testutil.CreateEntry(t, db, today, testutil.MoodID(t, db, "Happy"), 5)

	assert.Equal(t, 30, j.MaxStreakLookback())

	stats, err := j.GetStreakStats(1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Current)
	assert.Len(t, stats.MissedDays, 30)
	assert.Equal(t, "2026-06-20", stats.MissedLabels()[0])

	j.MaxLookback = 0
	assert.Equal(t, DefaultMaxStreakLookback, j.MaxStreakLookback())
}

func TestComputeStreaks(t *testing.T) {
	from := testutil.Day(2026, time.January, 1)
	to := testutil.Day(2026, time.January, 10)
	present := map[time.Time]bool{}
	for _, d := range []int{1, 2, 3, 4, 7, 8} {
		present[testutil.Day(2026, time.January, d)] = true
	}

	stats := ComputeStreaks(from, to, present)
	assert.Equal(t, 0, stats.Current, "today missing ends the current streak at zero")
	assert.Equal(t, 4, stats.Longest)
	assert.Equal(t, []string{"2026-01-05", "2026-01-06", "2026-01-09", "2026-01-10"}, stats.MissedLabels())

	empty := ComputeStreaks(to, to, nil)
	assert.Zero(t, empty.Current)
	assert.Equal(t, []string{"2026-01-10"}, empty.MissedLabels())
}

func TestGetAnalytics(t *testing.T) {
	j, db := newTestJournal(t, localNoon)
	happy := testutil.MoodID(t, db, "Happy")
	sad := testutil.MoodID(t, db, "Sad")
	calm := testutil.MoodID(t, db, "Calm")

	testutil.CreateEntry(t, db, testutil.Day(2026, time.August, 1), happy, 10, "Work")
	testutil.CreateEntry(t, db, testutil.Day(2026, time.August, 2), sad, 21, "Work", "Family")
	testutil.CreateEntry(t, db, testutil.Day(2026, time.August, 3), sad, 30, "Work", "Family")
	testutil.CreateEntry(t, db, testutil.Day(2026, time.August, 4), calm, 0)
	testutil.CreateEntry(t, db, testutil.Day(2026, time.September, 1), happy, 99, "Work")

	got, err := j.GetAnalytics(testutil.Day(2026, time.August, 1), testutil.Day(2026, time.August, 31))
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"Positive": 1, "Neutral": 1, "Negative": 2}, got.MoodCategoryCounts)
	assert.Equal(t, "😢 Sad", got.MostFrequentMood)
	assert.Equal(t, []TagCount{{Name: "Work", Count: 3}, {Name: "Family", Count: 2}}, got.TagCounts)
	assert.Equal(t, []TrendPoint{
		{Label: "2026-08-01", Value: 10},
		{Label: "2026-08-02", Value: 21},
		{Label: "2026-08-03", Value: 30},
		{Label: "2026-08-04", Value: 0},
	}, got.WordTrend)
}

func TestComputeAnalytics(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		got := ComputeAnalytics(nil)
		assert.Equal(t, "-", got.MostFrequentMood)
		assert.Equal(t, map[string]int{"Positive": 0, "Neutral": 0, "Negative": 0}, got.MoodCategoryCounts)
		assert.Empty(t, got.TagCounts)
		assert.Empty(t, got.WordTrend)
	})

	t.Run("MissingMoodCountsNeutralAndTiesKeepFirstSeen", func(t *testing.T) {
		joy := &models.Mood{Name: "Joy", Category: models.MoodPositive}
		gloom := &models.Mood{Name: "Gloom", Category: models.MoodNegative}
		tag := func(name string) models.EntryTag { return models.EntryTag{Tag: &models.Tag{Name: name}} }

		entries := []models.JournalEntry{
			{EntryDate: day(2026, 1, 1), PrimaryMood: gloom, WordCount: 3, EntryTags: []models.EntryTag{tag("b")}},
			{EntryDate: day(2026, 1, 2), PrimaryMood: joy, WordCount: 4, EntryTags: []models.EntryTag{tag("a")}},
			{EntryDate: day(2026, 1, 3), WordCount: 5},
		}

		got := ComputeAnalytics(entries)
		assert.Equal(t, "Gloom", got.MostFrequentMood)
		assert.Equal(t, 1, got.MoodCategoryCounts["Neutral"])
		assert.Equal(t, []TagCount{{Name: "b", Count: 1}, {Name: "a", Count: 1}}, got.TagCounts)
	})

	t.Run("SameDateAveragesRoundHalfEven", func(t *testing.T) {
		entries := []models.JournalEntry{
			{EntryDate: day(2026, 1, 1), WordCount: 2},
			{EntryDate: day(2026, 1, 1), WordCount: 3},
			{EntryDate: day(2026, 1, 2), WordCount: 3},
			{EntryDate: day(2026, 1, 2), WordCount: 4},
		}
		got := ComputeAnalytics(entries)
		assert.Equal(t, []TrendPoint{{Label: "2026-01-01", Value: 2}, {Label: "2026-01-02", Value: 4}}, got.WordTrend)
	})
}
