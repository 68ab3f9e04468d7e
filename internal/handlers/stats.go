package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/services"
)

// StatsHandler handles streak and analytics routes
type StatsHandler struct {
	Journal      *services.Journal
	LookbackDays int
}

// GetStreak handles GET /api/stats/streak?lookback=
// @Summary Streak statistics
// @Description Current and longest streak and missed days over a lookback window ending today
// @Tags Stats
// @Produce json
// @Param lookback query int false "Window length in days"
// @Success 200 {object} StreakView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /stats/streak [get]
func (h *StatsHandler) GetStreak(c *fiber.Ctx) error {
	lookback, err := queryInt(c, "lookback", h.LookbackDays)
	if err != nil {
		return serviceError(c, err, "getStreak")
	}
	if lookback < 0 {
		return serviceError(c, &services.ValidationError{Field: "lookback", Message: "must not be negative"}, "getStreak")
	}
	if maxDays := h.Journal.MaxStreakLookback(); lookback > maxDays {
		return serviceError(c, &services.ValidationError{Field: "lookback", Message: fmt.Sprintf("must not exceed %d", maxDays)}, "getStreak")
	}

	stats, err := h.Journal.GetStreakStats(lookback)
	if err != nil {
		return serviceError(c, err, "getStreak")
	}
	return c.Status(fiber.StatusOK).JSON(StreakView{
		Current:      stats.Current,
		Longest:      stats.Longest,
		MissedDays:   stats.MissedLabels(),
		LookbackDays: lookback,
	})
}

// GetAnalytics handles GET /api/stats/analytics?start=&end=
// @Summary Analytics
// @Description Mood categories, most frequent mood, tag counts and word trend for a date range. Defaults to the last 30 days.
// @Tags Stats
// @Produce json
// @Param start query string false "First date, yyyy-MM-dd"
// @Param end query string false "Last date, yyyy-MM-dd"
// @Success 200 {object} services.Analytics
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 423 {object} utils.ErrorResponseStruct
// @Router /stats/analytics [get]
func (h *StatsHandler) GetAnalytics(c *fiber.Ctx) error {
	start, end, err := dateRange(c, h.Journal.Today())
	if err != nil {
		return serviceError(c, err, "getAnalytics")
	}

	analytics, err := h.Journal.GetAnalytics(start, end)
	if err != nil {
		return serviceError(c, err, "getAnalytics")
	}
	return c.Status(fiber.StatusOK).JSON(analytics)
}
