package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/localnerve/moodjournal/internal/config"
	"github.com/localnerve/moodjournal/internal/database"
	"github.com/localnerve/moodjournal/internal/logger"
	"github.com/localnerve/moodjournal/internal/middleware"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	dbPathFlag string
	pinFlag    string
	jsonFlag   bool
)

var rootCmd = &cobra.Command{
	Use:           "moodjournal",
	Short:         "A local-first mood journal",
	Long:          `Record one entry per day with moods and tags, then browse, search, filter, export and review streaks and analytics.`,
	Version:       middleware.APIVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// journalApp is one CLI invocation's view of the journal. Its session starts Locked.
type journalApp struct {
	cfg      *config.Config
	db       *gorm.DB
	journal  *services.Journal
	security *services.Security
	settings *services.Settings
}

func openApp() (*journalApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if dbPathFlag != "" {
		cfg.DBType = "sqlite"
		cfg.DBDatabase = dbPathFlag
	}

	log.Logger = logger.NewConsole("moodjournal", cfg.LogLevel)

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Initialize(db); err != nil {
		database.Close(db)
		return nil, err
	}

	return &journalApp{
		cfg:      cfg,
		db:       db,
		journal:  &services.Journal{DB: db, Clock: time.Now, MaxLookback: cfg.StreakMaxLookbackDays},
		security: services.NewSecurity(db, services.BcryptHasher{Cost: cfg.BcryptCost}),
		settings: &services.Settings{DB: db},
	}, nil
}

func (a *journalApp) Close() {
	if err := database.Close(a.db); err != nil {
		log.Warn().Err(err).Msg("failed to close database")
	}
}

// unlock opens the session with --pin when a PIN is set
func (a *journalApp) unlock() error {
	locked, err := a.security.Locked()
	if err != nil || !locked {
		return err
	}
	if pinFlag == "" {
		return errors.New("journal is locked: pass --pin")
	}
	ok, err := a.security.Unlock(pinFlag)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("incorrect PIN")
	}
	return nil
}

// withApp opens the journal for the duration of run
func withApp(protected bool, run func(cmd *cobra.Command, args []string, a *journalApp) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if protected {
			if err := a.unlock(); err != nil {
				return err
			}
		}
		return run(cmd, args, a)
	}
}

// printJSON writes v as indented JSON when --json is set and reports whether it did
func printJSON(cmd *cobra.Command, v interface{}) (bool, error) {
	if !jsonFlag {
		return false, nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}

var moodsCmd = &cobra.Command{
	Use:   "moods",
	Short: "List moods",
	Args:  cobra.NoArgs,
	RunE: withApp(false, func(cmd *cobra.Command, args []string, a *journalApp) error {
		moods, err := a.journal.ListMoods()
		if err != nil {
			return fmt.Errorf("failed to list moods: %w", err)
		}
		if done, err := printJSON(cmd, moods); done {
			return err
		}
		for _, m := range moods {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d  %-9s %s\n", m.ID, m.Category, m.Name)
		}
		return nil
	}),
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: withApp(false, func(cmd *cobra.Command, args []string, a *journalApp) error {
		tags, err := a.journal.ListTags()
		if err != nil {
			return fmt.Errorf("failed to list tags: %w", err)
		}
		if done, err := printJSON(cmd, tags); done {
			return err
		}
		names := make([]string, 0, len(tags))
		for _, t := range tags {
			name := t.Name
			if !t.IsPrebuilt {
				name += "*"
			}
			names = append(names, name)
		}
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, ", "))
		return nil
	}),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "dbpath", "", "Path to a journal SQLite file (overrides JOURNAL_DB_TYPE and JOURNAL_DB_DATABASE)")
	rootCmd.PersistentFlags().StringVar(&pinFlag, "pin", "", "PIN to unlock a protected journal")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Print JSON")

	rootCmd.AddCommand(moodsCmd, tagsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
