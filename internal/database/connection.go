package database

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/localnerve/moodjournal/internal/config"
	"github.com/localnerve/moodjournal/internal/logger"
	"github.com/localnerve/moodjournal/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	cgosqlite "gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
)

// Dialector builds the gorm dialector for the configured DB_TYPE
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case "sqlite":
		// Pure Go driver, no cgo toolchain needed on the device
		path, err := config.EnsureDBDir(cfg.DBDatabase)
		if err != nil {
			return nil, err
		}
		return sqlite.Open(withParams(path, "_pragma=foreign_keys(1)", "_pragma=busy_timeout(5000)")), nil

	case "sqlite3":
		path, err := config.EnsureDBDir(cfg.DBDatabase)
		if err != nil {
			return nil, err
		}
		return cgosqlite.Open(withParams(path, "_foreign_keys=on", "_busy_timeout=5000")), nil

	case "mysql", "mariadb":
		mc := mysqldriver.NewConfig()
		mc.User = cfg.DBUser
		mc.Passwd = cfg.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		mc.DBName = cfg.DBDatabase
		mc.ParseTime = true
		mc.Loc = time.UTC
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return mysql.Open(mc.FormatDSN()), nil

	case "postgres", "postgresql":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBDatabase,
			cfg.DBPort,
		)
		return postgres.Open(dsn), nil

	case "sqlserver", "mssql":
		dsn := fmt.Sprintf("sqlserver://%s:%s@%s?database=%s",
			cfg.DBUser,
			cfg.DBPassword,
			net.JoinHostPort(cfg.DBHost, cfg.DBPort),
			cfg.DBDatabase,
		)
		return sqlserver.Open(dsn), nil
	}

	return nil, fmt.Errorf("unsupported database type: %s", cfg.DBType)
}

// Connect opens the journal database and waits for it to answer a ping
func Connect(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Gorm(log.Logger, cfg.DBLogLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL DB: %w", err)
	}

	if cfg.IsEmbedded() {
		// One writer for a local file
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(cfg.DBConnectionLimit)
		sqlDB.SetMaxIdleConns(max(cfg.DBConnectionLimit/2, 1))
	}

	if err := waitForPing(db, cfg); err != nil {
		_ = Close(db)
		return nil, err
	}

	log.Info().
		Str("db_type", cfg.DBType).
		Str("database", cfg.DBDatabase).
		Msg("connected to journal database")

	return db, nil
}

// waitForPing pings the database, retrying networked servers that are still starting
func waitForPing(db *gorm.DB, cfg *config.Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return sqlDB.PingContext(ctx)
	}

	if cfg.IsEmbedded() {
		if err := ping(); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = cfg.ConnectTimeout

	err = backoff.RetryNotify(ping, policy, func(err error, wait time.Duration) {
		log.Warn().Err(err).Dur("retry_in", wait).Str("db_type", cfg.DBType).Msg("database not ready")
	})
	if err != nil {
		return fmt.Errorf("database did not become ready within %s: %w", cfg.ConnectTimeout, err)
	}
	return nil
}

// AutoMigrate runs automatic migrations for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Category{},
		&models.Mood{},
		&models.Tag{},
		&models.JournalEntry{},
		&models.EntryTag{},
		&models.AppSetting{},
	)
}

// Initialize migrates the schema and seeds reference data. Safe to run on every start.
func Initialize(db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if _, err := Seed(db); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	return nil
}

// Close closes the database connection
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func withParams(dsn string, params ...string) string {
	if dsn == ":memory:" {
		dsn = "file::memory:"
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
