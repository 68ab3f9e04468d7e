package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/config"
	"github.com/localnerve/moodjournal/internal/middleware"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/localnerve/moodjournal/internal/types"
	"github.com/localnerve/moodjournal/internal/utils"
	"gorm.io/gorm"
)

// Deps are the services behind the API routes
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Journal  *services.Journal
	Security *services.Security
	Settings *services.Settings
	Exporter *services.Exporter
}

// NewDeps wires the services for cfg over db
func NewDeps(cfg *config.Config, db *gorm.DB) Deps {
	return Deps{
		Config:   cfg,
		DB:       db,
		Journal:  &services.Journal{DB: db, Clock: time.Now, MaxLookback: cfg.StreakMaxLookbackDays},
		Security: services.NewSecurity(db, services.BcryptHasher{Cost: cfg.BcryptCost}),
		Settings: &services.Settings{DB: db},
		Exporter: services.NewExporter(),
	}
}

// Register mounts /health and the /api routes on app
func Register(app fiber.Router, d Deps) {
	health := &HealthHandler{Config: d.Config, DB: d.DB}
	app.Get("/health", health.GetHealth)

	api := app.Group("/api", middleware.VersionMiddleware())

	journal := &JournalHandler{Journal: d.Journal, PageSize: d.Config.PageSize}
	stats := &StatsHandler{Journal: d.Journal, LookbackDays: d.Config.StreakLookbackDays}
	export := &ExportHandler{Journal: d.Journal, Exporter: d.Exporter}
	security := &SecurityHandler{Security: d.Security}
	settings := &SettingsHandler{Settings: d.Settings}

	unlocked := middleware.RequireUnlocked(d.Security)

	// Reference data and preferences stay readable while locked
	api.Get("/moods", journal.GetMoods)
	api.Get("/tags", journal.GetTags)
	api.Get("/settings/theme", settings.GetTheme)
	api.Put("/settings/theme", settings.SetTheme)
	api.Post("/settings/theme/toggle", settings.ToggleTheme)

	api.Get("/security/status", security.GetStatus)
	api.Post("/security/unlock", security.Unlock)
	api.Post("/security/lock", security.Lock)
	api.Post("/security/pin", unlocked, security.SetPin)

	entries := api.Group("/entries", unlocked)
	entries.Get("/", journal.GetEntries)
	entries.Get("/search", journal.SearchEntries)
	entries.Get("/filter", journal.FilterEntries)
	entries.Get("/range", journal.GetEntriesInRange)
	entries.Post("/today", journal.SaveToday)
	entries.Get("/:date", journal.GetEntry)
	entries.Delete("/:date", journal.DeleteEntry)

	statsGroup := api.Group("/stats", unlocked)
	statsGroup.Get("/streak", stats.GetStreak)
	statsGroup.Get("/analytics", stats.GetAnalytics)

	api.Get("/export/pdf", unlocked, export.ExportPDF)
}

// NotFound answers any route nothing else matched
func NotFound(c *fiber.Ctx) error {
	return utils.ErrorResponse(c, "[404] Resource Not Found", fiber.StatusNotFound, "notFound")
}

// ErrorHandler renders errors returned from handlers and middleware
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	var customErr *types.CustomError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &customErr):
		code = customErr.Code
		message = customErr.Message
		errorType = customErr.Type
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(utils.ErrorResponseStruct{
		Status:    code,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
		Type:      errorType,
	})
}
