package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/localnerve/moodjournal/internal/models"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	lookbackFlag int
	outFlag      string
)

// rangeFlags reads --start and --end. End defaults to today, start to 29 days before end.
func rangeFlags(a *journalApp) (time.Time, time.Time, error) {
	end := a.journal.Today()
	if endFlag != "" {
		d, err := services.ParseDate(endFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = d
	}
	start := end.AddDate(0, 0, -29)
	if startFlag != "" {
		d, err := services.ParseDate(startFlag)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = d
	}
	if start.After(end) {
		return time.Time{}, time.Time{}, &services.ValidationError{Field: "start", Message: "must not be after end"}
	}
	return start, end, nil
}

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show current and longest streaks",
	Args:  cobra.NoArgs,
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		lookback := lookbackFlag
		if lookback < 0 {
			lookback = a.cfg.StreakLookbackDays
		}
		if maxDays := a.journal.MaxStreakLookback(); lookback > maxDays {
			return &services.ValidationError{Field: "lookback", Message: fmt.Sprintf("must not exceed %d", maxDays)}
		}
		stats, err := a.journal.GetStreakStats(lookback)
		if err != nil {
			return err
		}
		missed := stats.MissedLabels()
		if done, err := printJSON(cmd, map[string]interface{}{
			"current":    stats.Current,
			"longest":    stats.Longest,
			"missedDays": missed,
		}); done {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Current streak: %d\n", stats.Current)
		fmt.Fprintf(w, "Longest streak: %d\n", stats.Longest)
		fmt.Fprintf(w, "Missed days (last %d): %d\n", lookback, len(missed))
		for _, d := range missed {
			fmt.Fprintf(w, "  %s\n", d)
		}
		return nil
	}),
}

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarize moods, tags and word counts over a date range",
	Args:  cobra.NoArgs,
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		start, end, err := rangeFlags(a)
		if err != nil {
			return err
		}
		analytics, err := a.journal.GetAnalytics(start, end)
		if err != nil {
			return err
		}
		if done, err := printJSON(cmd, analytics); done {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s -> %s\n\n", services.FormatDate(start), services.FormatDate(end))
		fmt.Fprintf(w, "Most frequent mood: %s\n", analytics.MostFrequentMood)
		fmt.Fprintln(w, "Mood categories:")
		for _, c := range models.MoodCategories {
			fmt.Fprintf(w, "  %-9s %d\n", c, analytics.MoodCategoryCounts[c.String()])
		}
		if len(analytics.TagCounts) > 0 {
			fmt.Fprintln(w, "Tags:")
			for _, tc := range analytics.TagCounts {
				fmt.Fprintf(w, "  %-20s %d\n", tc.Name, tc.Count)
			}
		}
		if len(analytics.WordTrend) > 0 {
			fmt.Fprintln(w, "Words per day:")
			for _, p := range analytics.WordTrend {
				fmt.Fprintf(w, "  %s %5d %s\n", p.Label, p.Value, strings.Repeat("#", min(p.Value/25, 40)))
			}
		}
		return nil
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a date range to PDF",
	Args:  cobra.NoArgs,
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		start, end, err := rangeFlags(a)
		if err != nil {
			return err
		}
		entries, err := a.journal.GetEntriesInRange(start, end)
		if err != nil {
			return err
		}
		pdf, err := services.NewExporter().JournalPDF(entries, start, end)
		if err != nil {
			return fmt.Errorf("failed to render PDF: %w", err)
		}

		out := outFlag
		if out == "" {
			out = fmt.Sprintf("journal_%s_%s.pdf", services.FormatDate(start), services.FormatDate(end))
		}
		if err := os.WriteFile(out, pdf, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}

		log.Info().Str("file", out).Int("entries", len(entries)).Msg("exported journal")
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d entries to %s\n", len(entries), out)
		return nil
	}),
}

func init() {
	streakCmd.Flags().IntVar(&lookbackFlag, "lookback", -1, "Days to look back (default JOURNAL_STREAK_LOOKBACK_DAYS)")

	for _, c := range []*cobra.Command{analyticsCmd, exportCmd} {
		c.Flags().StringVar(&startFlag, "start", "", "First date, yyyy-MM-dd (default 29 days before end)")
		c.Flags().StringVar(&endFlag, "end", "", "Last date, yyyy-MM-dd (default today)")
	}
	exportCmd.Flags().StringVarP(&outFlag, "out", "o", "", "Output file (default journal_<start>_<end>.pdf)")

	rootCmd.AddCommand(streakCmd, analyticsCmd, exportCmd)
}
