package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/config"
	"github.com/localnerve/moodjournal/internal/handlers"
	"github.com/localnerve/moodjournal/internal/models"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/localnerve/moodjournal/internal/testutil"
	"github.com/localnerve/moodjournal/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var today = time.Date(2026, time.October, 16, 19, 45, 0, 0, time.Local)

type testApp struct {
	app  *fiber.App
	db   *gorm.DB
	deps handlers.Deps
}

// setupApp builds the full route table over a fresh database
func setupApp(t *testing.T) *testApp {
	t.Helper()
	db := testutil.SetupTestDB(t)
	cfg := &config.Config{DBType: "sqlite3", DBDatabase: ":memory:", PageSize: 10, StreakLookbackDays: 60, BcryptCost: bcrypt.MinCost}

	deps := handlers.NewDeps(cfg, db)
	deps.Journal.Clock = testutil.FixedClock(today)
	deps.Exporter = &services.Exporter{Clock: testutil.FixedClock(today)}

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Register(app, deps)
	app.Use(handlers.NotFound)

	return &testApp{app: app, db: db, deps: deps}
}

func (ta *testApp) do(t *testing.T, method, target string, body interface{}) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ta.app.Test(req, -1)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	return resp
}

func TestGetMoodsAndTags(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/moods", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var moods []map[string]interface{}
	testutil.ParseJSON(t, resp, &moods)
	require.Len(t, moods, 15)
	assert.Equal(t, "Positive", moods[0]["category"])

	resp = ta.do(t, "GET", "/api/tags", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var tags []models.Tag
	testutil.ParseJSON(t, resp, &tags)
	assert.Len(t, tags, 31)
	assert.Equal(t, "1.0.0", resp.Header.Get("X-Api-Version"))
}

func TestSaveTodayAndRead(t *testing.T) {
	ta := setupApp(t)
	happy := testutil.MoodID(t, ta.db, "Happy")
	calm := testutil.MoodID(t, ta.db, "Calm")

	resp := ta.do(t, "POST", "/api/entries/today", map[string]interface{}{
		"title":            "First",
		"content":          "<p>Hello there world</p>",
		"primaryMoodId":    happy,
		"secondaryMood1Id": "",
		"secondaryMood2Id": json.Number("0"),
		"tags":             "Work, new idea ,work",
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var saved handlers.EntryView
	testutil.ParseJSON(t, resp, &saved)
	assert.Equal(t, "2026-10-16", saved.Date)
	assert.Equal(t, 3, saved.WordCount)
	assert.ElementsMatch(t, []string{"Work", "new idea"}, saved.Tags)
	assert.Nil(t, saved.SecondaryMood1)

	resp = ta.do(t, "POST", "/api/entries/today", map[string]interface{}{
		"title":            "Second",
		"content":          "replaced",
		"primaryMoodId":    happy,
		"secondaryMood1Id": calm,
		"tags":             []string{"Family"},
	})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = ta.do(t, "GET", "/api/entries/2026-10-16", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var got handlers.EntryView
	testutil.ParseJSON(t, resp, &got)
	assert.Equal(t, saved.ID, got.ID)
	assert.Equal(t, "Second", got.Title)
	assert.Equal(t, []string{"Family"}, got.Tags)
	require.NotNil(t, got.SecondaryMood1)
	assert.Equal(t, calm, got.SecondaryMood1.ID)

	resp = ta.do(t, "GET", "/api/entries?page=1&pageSize=5", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var page []handlers.EntryView
	testutil.ParseJSON(t, resp, &page)
	assert.Len(t, page, 1)
}

func TestSaveToday_Validation(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "POST", "/api/entries/today", map[string]interface{}{"title": "no mood"})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, "validation", body.Type)
	assert.False(t, body.Ok)

	req := httptest.NewRequest("POST", "/api/entries/today", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestGetAndDeleteEntry_NotFound(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/entries/2026-01-01", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	resp = ta.do(t, "DELETE", "/api/entries/2026-01-01", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)

	resp = ta.do(t, "GET", "/api/entries/yesterday", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestDeleteEntry(t *testing.T) {
	ta := setupApp(t)
	testutil.CreateEntry(t, ta.db, testutil.Day(2026, time.October, 1), testutil.MoodID(t, ta.db, "Sad"), 4, "Work")

	resp := ta.do(t, "DELETE", "/api/entries/2026-10-01", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var body utils.SuccessResponseStruct
	testutil.ParseJSON(t, resp, &body)
	assert.True(t, body.Ok)

	resp = ta.do(t, "GET", "/api/entries/2026-10-01", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestSearchFilterAndRange(t *testing.T) {
	ta := setupApp(t)
	happy := testutil.MoodID(t, ta.db, "Happy")
	sad := testutil.MoodID(t, ta.db, "Sad")
	testutil.CreateEntry(t, ta.db, testutil.Day(2026, time.October, 10), happy, 2, "Work")
	testutil.CreateEntry(t, ta.db, testutil.Day(2026, time.October, 12), sad, 3, "Family")
	testutil.CreateEntry(t, ta.db, testutil.Day(2026, time.August, 1), sad, 3)

	resp := ta.do(t, "GET", "/api/entries/search?q=Entry%202026-10", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var found []handlers.EntryView
	testutil.ParseJSON(t, resp, &found)
	require.Len(t, found, 2)
	assert.Equal(t, "2026-10-12", found[0].Date)

	resp = ta.do(t, "GET", "/api/entries/filter?tag=FAM", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var filtered []handlers.EntryView
	testutil.ParseJSON(t, resp, &filtered)
	require.Len(t, filtered, 1)
	assert.Equal(t, []string{"Family"}, filtered[0].Tags)

	resp = ta.do(t, "GET", "/api/entries/filter?moodId=abc", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	// default range is the last 30 days
	resp = ta.do(t, "GET", "/api/entries/range", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var recent []handlers.EntryView
	testutil.ParseJSON(t, resp, &recent)
	assert.Len(t, recent, 2)

	resp = ta.do(t, "GET", "/api/entries/range?start=2026-07-01&end=2026-08-31", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var summer []handlers.EntryView
	testutil.ParseJSON(t, resp, &summer)
	assert.Len(t, summer, 1)

	resp = ta.do(t, "GET", "/api/entries/range?start=2026-09-01&end=2026-08-31", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestStats(t *testing.T) {
	ta := setupApp(t)
	happy := testutil.MoodID(t, ta.db, "Happy")
	day := testutil.Day(2026, time.October, 16)
	for _, back := range []int{0, 1, 2, 4, 5} {
		testutil.CreateEntry(t, ta.db, day.AddDate(0, 0, -back), happy, 10+back, "Work")
	}

	resp := ta.do(t, "GET", "/api/stats/streak?lookback=7", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var streak handlers.StreakView
	testutil.ParseJSON(t, resp, &streak)
	assert.Equal(t, 3, streak.Current)
	assert.Equal(t, 3, streak.Longest)
	assert.Equal(t, []string{"2026-10-09", "2026-10-10", "2026-10-13"}, streak.MissedDays)

	resp = ta.do(t, "GET", "/api/stats/streak?lookback=-2", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)

	resp = ta.do(t, "GET", "/api/stats/streak?lookback=1000000000", nil)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	var tooLong utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &tooLong)
	assert.Equal(t, "validation", tooLong.Type)
	assert.Contains(t, tooLong.Message, "3660")

	resp = ta.do(t, "GET", "/api/stats/streak?lookback=3660", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = ta.do(t, "GET", "/api/stats/analytics?start=2026-10-01&end=2026-10-16", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var analytics services.Analytics
	testutil.ParseJSON(t, resp, &analytics)
	assert.Equal(t, 5, analytics.MoodCategoryCounts["Positive"])
	assert.Equal(t, []services.TagCount{{Name: "Work", Count: 5}}, analytics.TagCounts)
	require.Len(t, analytics.WordTrend, 5)
	assert.Equal(t, services.TrendPoint{Label: "2026-10-11", Value: 15}, analytics.WordTrend[0])
}

func TestExportPDF(t *testing.T) {
	ta := setupApp(t)
	testutil.CreateEntry(t, ta.db, testutil.Day(2026, time.October, 3), testutil.MoodID(t, ta.db, "Happy"), 2, "Travel")

	resp := ta.do(t, "GET", "/api/export/pdf?start=2026-10-01&end=2026-10-16", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "journal_2026-10-01_2026-10-16.pdf")

	body := testutil.ReadBody(t, resp)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF-")))
	assert.True(t, bytes.Contains(body, []byte("Tags: Travel")))
}

func TestLockGate(t *testing.T) {
	ta := setupApp(t)

	// no PIN: everything open
	resp := ta.do(t, "GET", "/api/entries", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = ta.do(t, "POST", "/api/security/pin", map[string]string{"pin": "1234"})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var status handlers.SecurityStatus
	testutil.ParseJSON(t, resp, &status)
	assert.True(t, status.HasPin)
	assert.True(t, status.Locked)
	assert.Equal(t, "locked", status.State)

	for _, target := range []string{"/api/entries", "/api/entries/2026-10-16", "/api/stats/streak", "/api/export/pdf"} {
		resp = ta.do(t, "GET", target, nil)
		testutil.AssertStatus(t, resp, fiber.StatusLocked)
		var body utils.ErrorResponseStruct
		testutil.ParseJSON(t, resp, &body)
		assert.Equal(t, "security.locked", body.Type, target)
	}

	resp = ta.do(t, "POST", "/api/security/pin", map[string]string{"pin": "9999"})
	testutil.AssertStatus(t, resp, fiber.StatusLocked)

	// reference data stays readable
	resp = ta.do(t, "GET", "/api/moods", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = ta.do(t, "POST", "/api/security/unlock", map[string]string{"pin": "0000"})
	testutil.AssertStatus(t, resp, fiber.StatusUnauthorized)

	resp = ta.do(t, "POST", "/api/security/unlock", map[string]string{"pin": "1234"})
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	testutil.ParseJSON(t, resp, &status)
	assert.False(t, status.Locked)

	resp = ta.do(t, "GET", "/api/entries", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = ta.do(t, "POST", "/api/security/lock", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = ta.do(t, "GET", "/api/entries", nil)
	testutil.AssertStatus(t, resp, fiber.StatusLocked)
}

func TestTheme(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/api/settings/theme", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var theme handlers.ThemeView
	testutil.ParseJSON(t, resp, &theme)
	assert.Equal(t, "light", theme.Theme)

	resp = ta.do(t, "POST", "/api/settings/theme/toggle", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	testutil.ParseJSON(t, resp, &theme)
	assert.Equal(t, "dark", theme.Theme)

	resp = ta.do(t, "PUT", "/api/settings/theme", map[string]string{"theme": "light"})
	testutil.AssertStatus(t, resp, fiber.StatusOK)

	resp = ta.do(t, "PUT", "/api/settings/theme", map[string]string{"theme": "neon"})
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
}

func TestHealthAndNotFound(t *testing.T) {
	ta := setupApp(t)

	resp := ta.do(t, "GET", "/health", nil)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
	var health services.HealthCheckResult
	testutil.ParseJSON(t, resp, &health)
	assert.Equal(t, "healthy", health.Status)

	resp = ta.do(t, "GET", "/nowhere", nil)
	testutil.AssertStatus(t, resp, fiber.StatusNotFound)
}

func TestVersionHeader(t *testing.T) {
	ta := setupApp(t)

	req := httptest.NewRequest("GET", "/api/moods", nil)
	req.Header.Set("X-Api-Version", "2.0.0")
	resp, err := ta.app.Test(req)
	require.NoError(t, err)
	testutil.AssertStatus(t, resp, fiber.StatusBadRequest)
	var body utils.ErrorResponseStruct
	testutil.ParseJSON(t, resp, &body)
	assert.Equal(t, "version", body.Type)

	req = httptest.NewRequest("GET", "/api/moods", nil)
	req.Header.Set("X-Api-Version", "1.0")
	resp, err = ta.app.Test(req)
	require.NoError(t, err)
	testutil.AssertStatus(t, resp, fiber.StatusOK)
}
