package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/localnerve/moodjournal/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the CLI with fresh flag values, since cobra keeps them between calls
func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	dbPathFlag, pinFlag, jsonFlag = "", "", false
	titleFlag, contentFlag, moodFlag, secondaryFlag, tagsFlag = "", "", 0, nil, nil
	pageFlag, pageSizeFlag = 1, 0
	startFlag, endFlag, moodIDFlag, tagTextFlag = "", "", 0, ""
	lookbackFlag, outFlag = -1, ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--dbpath", dbPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func setupCLI(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("JOURNAL_ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("JOURNAL_BCRYPT_COST", "4")
	t.Setenv("JOURNAL_LOG_LEVEL", "error")
	return filepath.Join(dir, "journal.db")
}

func moodID(t *testing.T, dbPath, plain string) string {
	t.Helper()
	out, err := run(t, dbPath, "moods", "--json")
	require.NoError(t, err)
	var moods []models.Mood
	require.NoError(t, json.Unmarshal([]byte(out), &moods))
	for _, m := range moods {
		if m.PlainName() == plain {
			return strconv.FormatUint(uint64(m.ID), 10)
		}
	}
	t.Fatalf("mood %q not seeded", plain)
	return ""
}

func TestCLI_EntryLifecycle(t *testing.T) {
	db := setupCLI(t)
	happy := moodID(t, db, "Happy")

	out, err := run(t, db, "today", "--title", "CLI day", "--content", "<p>written from a shell</p>", "--mood", happy, "--tags", "Work,cli")
	require.NoError(t, err)
	assert.Contains(t, out, "CLI day")
	assert.Contains(t, out, "Tags: Work, cli")
	assert.Contains(t, out, "Words: 4")

	out, err = run(t, db, "show", "today", "--json")
	require.NoError(t, err)
	var entry models.JournalEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entry))
	assert.Equal(t, "CLI day", entry.Title)

	out, err = run(t, db, "search", "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "CLI day")

	out, err = run(t, db, "filter", "--tag", "CL")
	require.NoError(t, err)
	assert.Contains(t, out, "CLI day")

	out, err = run(t, db, "streak")
	require.NoError(t, err)
	assert.Contains(t, out, "Current streak: 1")

	_, err = run(t, db, "streak", "--lookback", "1000000000")
	assert.ErrorContains(t, err, "must not exceed 3660")

	_, err = run(t, db, "delete", "today")
	require.NoError(t, err)

	_, err = run(t, db, "show", "today")
	assert.ErrorContains(t, err, "no entry for")
}

func TestCLI_TodayRequiresMood(t *testing.T) {
	db := setupCLI(t)
	_, err := run(t, db, "today", "--title", "no mood")
	assert.ErrorContains(t, err, "primary mood is required")
}

func TestCLI_PinGatesJournal(t *testing.T) {
	db := setupCLI(t)

	out, err := run(t, db, "pin", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "No PIN set")

	_, err = run(t, db, "pin", "set", "1357")
	require.NoError(t, err)

	_, err = run(t, db, "list")
	assert.ErrorContains(t, err, "locked")

	_, err = run(t, db, "list", "--pin", "0000")
	assert.ErrorContains(t, err, "incorrect PIN")

	out, err = run(t, db, "list", "--pin", "1357")
	require.NoError(t, err)
	assert.Contains(t, out, "No entries.")

	// Reference data stays readable
	_, err = run(t, db, "tags")
	assert.NoError(t, err)
}

func TestCLI_Theme(t *testing.T) {
	db := setupCLI(t)

	out, err := run(t, db, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light\n", out)

	out, err = run(t, db, "theme", "toggle")
	require.NoError(t, err)
	assert.Equal(t, "dark\n", out)

	_, err = run(t, db, "theme", "sepia")
	assert.ErrorContains(t, err, "theme must be light or dark")
}

func TestCLI_Export(t *testing.T) {
	db := setupCLI(t)
	target := filepath.Join(filepath.Dir(db), "out.pdf")

	out, err := run(t, db, "export", "--start", "2026-01-01", "--end", "2026-01-31", "--out", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote 0 entries")

	raw, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))

	_, err = run(t, db, "export", "--start", "2026-02-01", "--end", "2026-01-01")
	assert.Error(t, err)
}

func TestCLI_Schema(t *testing.T) {
	db := setupCLI(t)

	out, err := run(t, db, "schema")
	require.NoError(t, err)
	assert.Contains(t, out, "=== Table: journal_entries ===")
	assert.Contains(t, out, "entry_date")
	assert.Contains(t, out, "=== Table: entry_tags ===")
}
