package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/moodjournal/internal/config"
	"github.com/localnerve/moodjournal/internal/services"
	"gorm.io/gorm"
)

// HealthHandler reports database health
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// GetHealth handles GET /health
// @Summary Health check
// @Description Database reachability and row counts
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
