package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/localnerve/moodjournal/internal/config"
	"github.com/localnerve/moodjournal/internal/database"
	"github.com/localnerve/moodjournal/internal/handlers"
	"github.com/localnerve/moodjournal/internal/logger"
	"github.com/rs/zerolog/log"
)

// @title Mood Journal API
// @version 1.0.0
// @description Local API for the mood journal: entries, moods, tags, streaks, analytics, PDF export and the PIN lock
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/moodjournal
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New("moodjournal", cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer database.Close(db)

	// Migrate and seed
	if err := database.Initialize(db); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	app := newApp(handlers.NewDeps(cfg, db))

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info().Msg("gracefully shutting down")
		_ = app.Shutdown()
	}()

	// Loopback only: the API serves the local UI
	addr := "127.0.0.1:" + cfg.Port
	log.Info().Str("addr", addr).Msg("starting server")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	log.Info().Msg("server stopped")
}
