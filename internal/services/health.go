package services

import (
	"fmt"

	"github.com/localnerve/moodjournal/internal/config"
	"github.com/localnerve/moodjournal/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Counts       map[string]int64  `json:"counts,omitempty"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck pings the journal database and counts its rows
func HealthCheck(cfg *config.Config, db *gorm.DB) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		return unhealthy(result, "error", "database_error", fmt.Errorf("database connection error: %w", err))
	}
	if err := sqlDB.Ping(); err != nil {
		return unhealthy(result, "unreachable", "database_ping_error", fmt.Errorf("database ping failed: %w", err))
	}

	result.Database = "ok"
	result.Details["database_type"] = cfg.DBType
	result.Details["database_name"] = cfg.DBDatabase

	result.Counts = make(map[string]int64)
	tables := []struct {
		name  string
		model interface{}
	}{
		{"entries", &models.JournalEntry{}},
		{"moods", &models.Mood{}},
		{"tags", &models.Tag{}},
	}
	for _, table := range tables {
		var n int64
		if err := db.Model(table.model).Count(&n).Error; err != nil {
			return unhealthy(result, "error", "count_"+table.name+"_error", fmt.Errorf("counting %s failed: %w", table.name, err))
		}
		result.Counts[table.name] = n
	}

	log.Debug().Interface("counts", result.Counts).Msg("health check passed")
	return result
}

func unhealthy(result HealthCheckResult, state, detail string, err error) HealthCheckResult {
	result.Status = "unhealthy"
	result.Database = state
	result.Details[detail] = err.Error()
	result.ErrorMessage = err.Error()
	log.Warn().Err(err).Msg("health check failed")
	return result
}
