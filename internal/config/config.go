package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix prefixes every environment variable, e.g. JOURNAL_PORT
const EnvPrefix = "JOURNAL"

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string `envconfig:"PORT" default:"3000"`

	// Database configuration
	DBType            string        `envconfig:"DB_TYPE" default:"sqlite"` // sqlite, sqlite3, mysql, postgres, sqlserver
	DBHost            string        `envconfig:"DB_HOST" default:"localhost"`
	DBPort            string        `envconfig:"DB_PORT" default:""`
	DBDatabase        string        `envconfig:"DB_DATABASE" default:""`
	DBUser            string        `envconfig:"DB_USER" default:""`
	DBPassword        string        `envconfig:"DB_PASSWORD" default:""`
	DBConnectionLimit int           `envconfig:"DB_CONNECTION_LIMIT" default:"5"`
	ConnectTimeout    time.Duration `envconfig:"CONNECT_TIMEOUT" default:"30s"`

	// Logging
	LogLevel   string `envconfig:"LOG_LEVEL" default:"info"`
	DBLogLevel string `envconfig:"DB_LOG_LEVEL" default:"warn"`

	// Journal behaviour
	StreakLookbackDays    int `envconfig:"STREAK_LOOKBACK_DAYS" default:"60"`
	StreakMaxLookbackDays int `envconfig:"STREAK_MAX_LOOKBACK_DAYS" default:"3660"`
	PageSize              int `envconfig:"PAGE_SIZE" default:"10"`
	BcryptCost            int `envconfig:"BCRYPT_COST" default:"10"`
}

// Load loads configuration from an optional .env file and the environment
func Load() (*Config, error) {
	envFile := os.Getenv(EnvPrefix + "_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ResolveDefaults validates the database settings and fills derived defaults
func (c *Config) ResolveDefaults() error {
	c.DBType = strings.ToLower(strings.TrimSpace(c.DBType))

	switch c.DBType {
	case "sqlite", "sqlite3":
		if c.DBDatabase == "" {
			c.DBDatabase = DefaultDBPath()
		}
	case "mysql", "mariadb":
		if c.DBPort == "" {
			c.DBPort = "3306"
		}
	case "postgres", "postgresql":
		if c.DBPort == "" {
			c.DBPort = "5432"
		}
	case "sqlserver", "mssql":
		if c.DBPort == "" {
			c.DBPort = "1433"
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}

	if !c.IsEmbedded() {
		if c.DBDatabase == "" {
			return fmt.Errorf("%s_DB_DATABASE is required for %s", EnvPrefix, c.DBType)
		}
		if c.DBUser == "" {
			return fmt.Errorf("%s_DB_USER is required for %s", EnvPrefix, c.DBType)
		}
	}

	if c.DBConnectionLimit < 1 {
		c.DBConnectionLimit = 1
	}
	if c.StreakMaxLookbackDays < 1 {
		c.StreakMaxLookbackDays = 3660
	}
	if c.StreakLookbackDays < 0 {
		return fmt.Errorf("%s_STREAK_LOOKBACK_DAYS must not be negative", EnvPrefix)
	}
	if c.StreakLookbackDays > c.StreakMaxLookbackDays {
		return fmt.Errorf("%s_STREAK_LOOKBACK_DAYS must not exceed %s_STREAK_MAX_LOOKBACK_DAYS (%d)", EnvPrefix, EnvPrefix, c.StreakMaxLookbackDays)
	}
	if c.PageSize < 1 {
		c.PageSize = 10
	}

	return nil
}

// IsEmbedded reports whether the database is a local SQLite file
func (c *Config) IsEmbedded() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite3"
}

// DefaultDBPath returns a system-appropriate default path for the journal database
func DefaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "journal.db"
	}

	switch runtime.GOOS {
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming", "moodjournal", "journal.db")
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "moodjournal", "journal.db")
	default:
		return filepath.Join(homeDir, ".local", "share", "moodjournal", "journal.db")
	}
}

// EnsureDBDir expands a leading ~/ and creates the parent directory of a SQLite file path
func EnsureDBDir(path string) (string, error) {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return path, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory to expand path '%s': %w", path, err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path for '%s': %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory for database '%s': %w", absPath, err)
	}

	return absPath, nil
}
