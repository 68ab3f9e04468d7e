package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/localnerve/moodjournal/internal/utils"
)

// SettingsHandler handles preference routes
type SettingsHandler struct {
	Settings *services.Settings
}

// GetTheme handles GET /api/settings/theme
// @Summary Get the theme
// @Tags Settings
// @Produce json
// @Success 200 {object} ThemeView
// @Router /settings/theme [get]
func (h *SettingsHandler) GetTheme(c *fiber.Ctx) error {
	theme, err := h.Settings.GetTheme()
	if err != nil {
		return serviceError(c, err, "getTheme")
	}
	return c.Status(fiber.StatusOK).JSON(ThemeView{Theme: theme})
}

// SetTheme handles PUT /api/settings/theme
// @Summary Set the theme
// @Tags Settings
// @Accept json
// @Produce json
// @Param theme body ThemeView true "light or dark"
// @Success 200 {object} ThemeView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Router /settings/theme [put]
func (h *SettingsHandler) SetTheme(c *fiber.Ctx) error {
	var req ThemeView
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body: "+err.Error())
	}

	theme, err := h.Settings.SetTheme(req.Theme)
	if err != nil {
		return serviceError(c, err, "setTheme")
	}
	return c.Status(fiber.StatusOK).JSON(ThemeView{Theme: theme})
}

// ToggleTheme handles POST /api/settings/theme/toggle
// @Summary Toggle the theme
// @Tags Settings
// @Produce json
// @Success 200 {object} ThemeView
// @Router /settings/theme/toggle [post]
func (h *SettingsHandler) ToggleTheme(c *fiber.Ctx) error {
	theme, err := h.Settings.ToggleTheme()
	if err != nil {
		return serviceError(c, err, "toggleTheme")
	}
	return c.Status(fiber.StatusOK).JSON(ThemeView{Theme: theme})
}
