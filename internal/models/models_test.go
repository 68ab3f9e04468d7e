package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestMoodCategory(t *testing.T) {
	for _, c := range MoodCategories {
		parsed, err := ParseMoodCategory(" " + c.String() + " ")
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	parsed, err := ParseMoodCategory("negative")
	require.NoError(t, err)
	assert.Equal(t, MoodNegative, parsed)

	_, err = ParseMoodCategory("Ecstatic")
	assert.Error(t, err)
	assert.Equal(t, "MoodCategory(9)", MoodCategory(9).String())
}

func TestMood_JSON(t *testing.T) {
	key := "happy"
	raw, err := json.Marshal(Mood{ID: 3, Name: "😊 Happy", Category: MoodPositive, SeedKey: &key})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"😊 Happy","category":"Positive"}`, string(raw))

	var m Mood
	require.NoError(t, json.Unmarshal([]byte(`{"id":4,"name":"😐 Bored","category":"Neutral"}`), &m))
	assert.Equal(t, MoodNeutral, m.Category)
	assert.Equal(t, "Bored", m.PlainName())

	assert.Error(t, json.Unmarshal([]byte(`{"category":"Sideways"}`), &m))
}

func TestPlainMoodName(t *testing.T) {
	assert.Equal(t, "Happy", PlainMoodName("😊 Happy"))
	assert.Equal(t, "Very Calm", PlainMoodName("😌 Very Calm"))
	assert.Equal(t, "Plain", PlainMoodName("  Plain "))
}

func TestTag_BeforeSave(t *testing.T) {
	tag := Tag{Name: "  Self Care "}
	require.NoError(t, tag.BeforeSave(nil))
	assert.Equal(t, "self care", tag.NameKey)
	assert.Equal(t, TagKey("SELF CARE"), tag.NameKey)
}

func TestJournalEntry_Helpers(t *testing.T) {
	e := JournalEntry{
		EntryDate: datatypes.Date(time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC)),
		EntryTags: []EntryTag{
			{TagID: 1, Tag: &Tag{Name: "Work"}},
			{TagID: 2},
			{TagID: 3, Tag: &Tag{Name: "Family"}},
		},
	}
	assert.Equal(t, "2026-03-07", e.DateLabel())
	assert.Equal(t, []string{"Work", "Family"}, e.TagNames())
	assert.Equal(t, "-", e.PrimaryMoodName())

	e.PrimaryMood = &Mood{Name: "😢 Sad"}
	assert.Equal(t, "😢 Sad", e.PrimaryMoodName())
}

func TestAppSetting_HasPin(t *testing.T) {
	blank := "  "
	digest := "$2a$04$abc"
	assert.False(t, AppSetting{}.HasPin())
	assert.False(t, AppSetting{PinHash: &blank}.HasPin())
	assert.True(t, AppSetting{PinHash: &digest}.HasPin())
}

func TestJSON_Map(t *testing.T) {
	var empty JSON
	m, err := empty.Map()
	require.NoError(t, err)
	assert.Empty(t, m)

	v, err := empty.Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)

	doc, err := JSONFromMap(map[string]interface{}{"theme": "dark"})
	require.NoError(t, err)
	m, err = doc.Map()
	require.NoError(t, err)
	assert.Equal(t, "dark", m["theme"])

	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(raw))
}
