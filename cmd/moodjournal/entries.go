package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/localnerve/moodjournal/internal/models"
	"github.com/localnerve/moodjournal/internal/services"
	"github.com/spf13/cobra"
)

var (
	titleFlag     string
	contentFlag   string
	moodFlag      uint
	secondaryFlag []uint
	tagsFlag      []string
	pageFlag      int
	pageSizeFlag  int
	startFlag     string
	endFlag       string
	moodIDFlag    int
	tagTextFlag   string
)

// dateArg parses a yyyy-MM-dd argument, or "today"
func dateArg(a *journalApp, s string) (time.Time, error) {
	if strings.EqualFold(s, "today") {
		return a.journal.Today(), nil
	}
	return services.ParseDate(s)
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := services.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func printEntry(w io.Writer, e *models.JournalEntry) {
	fmt.Fprintf(w, "%s  %s\n", e.DateLabel(), e.Title)
	fmt.Fprintf(w, "Mood: %s", e.PrimaryMoodName())
	for _, m := range []*models.Mood{e.SecondaryMood1, e.SecondaryMood2} {
		if m != nil {
			fmt.Fprintf(w, ", %s", m.Name)
		}
	}
	fmt.Fprintln(w)
	tags := "-"
	if names := e.TagNames(); len(names) > 0 {
		tags = strings.Join(names, ", ")
	}
	fmt.Fprintf(w, "Tags: %s\n", tags)
	fmt.Fprintf(w, "Words: %d\n\n", e.WordCount)
	fmt.Fprintln(w, services.PlainText(e.Content))
}

func printEntryList(cmd *cobra.Command, entries []models.JournalEntry) error {
	if done, err := printJSON(cmd, entries); done {
		return err
	}
	w := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(w, "No entries.")
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %-24s %5d words  %s\n", e.DateLabel(), e.PrimaryMoodName(), e.WordCount, e.Title)
	}
	return nil
}

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Create or replace today's entry",
	Long:  `Save today's entry. A second save on the same day replaces title, content, moods and tags.`,
	Args:  cobra.NoArgs,
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		if moodFlag == 0 {
			return errors.New("a primary mood is required: pass --mood with an id from 'moodjournal moods'")
		}
		if len(secondaryFlag) > 2 {
			return errors.New("at most two secondary moods")
		}

		in := services.EntryInput{
			Title:         titleFlag,
			Content:       contentFlag,
			PrimaryMoodID: moodFlag,
			Tags:          tagsFlag,
		}
		if len(secondaryFlag) > 0 {
			in.SecondaryMood1ID = &secondaryFlag[0]
		}
		if len(secondaryFlag) > 1 {
			in.SecondaryMood2ID = &secondaryFlag[1]
		}

		entry, err := a.journal.UpsertToday(in)
		if err != nil {
			return err
		}
		if done, err := printJSON(cmd, entry); done {
			return err
		}
		printEntry(cmd.OutOrStdout(), entry)
		return nil
	}),
}

var showCmd = &cobra.Command{
	Use:   "show [yyyy-MM-dd|today]",
	Short: "Show the entry for a date",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		date, err := dateArg(a, args[0])
		if err != nil {
			return err
		}
		entry, err := a.journal.GetEntryByDate(date)
		if errors.Is(err, services.ErrEntryNotFound) {
			return fmt.Errorf("no entry for %s", services.FormatDate(date))
		}
		if err != nil {
			return err
		}
		if done, err := printJSON(cmd, entry); done {
			return err
		}
		printEntry(cmd.OutOrStdout(), entry)
		return nil
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete [yyyy-MM-dd|today]",
	Short: "Delete the entry for a date",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		date, err := dateArg(a, args[0])
		if err != nil {
			return err
		}
		err = a.journal.DeleteEntryByDate(date)
		if errors.Is(err, services.ErrEntryNotFound) {
			return fmt.Errorf("no entry for %s", services.FormatDate(date))
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry for %s\n", services.FormatDate(date))
		return nil
	}),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	Args:  cobra.NoArgs,
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		size := pageSizeFlag
		if size < 1 {
			size = a.cfg.PageSize
		}
		entries, err := a.journal.GetPaged(pageFlag, size)
		if err != nil {
			return err
		}
		return printEntryList(cmd, entries)
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Find entries whose title or content contains text (case-sensitive)",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		entries, err := a.journal.Search(query)
		if err != nil {
			return err
		}
		return printEntryList(cmd, entries)
	}),
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter entries by date, primary mood and tag",
	Args:  cobra.NoArgs,
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		start, err := optionalDate(startFlag)
		if err != nil {
			return err
		}
		end, err := optionalDate(endFlag)
		if err != nil {
			return err
		}
		entries, err := a.journal.Filter(services.FilterOptions{
			Start:   start,
			End:     end,
			MoodID:  moodIDFlag,
			TagText: tagTextFlag,
		})
		if err != nil {
			return err
		}
		return printEntryList(cmd, entries)
	}),
}

func init() {
	todayCmd.Flags().StringVar(&titleFlag, "title", "", "Entry title")
	todayCmd.Flags().StringVar(&contentFlag, "content", "", "Entry content (HTML or plain text)")
	todayCmd.Flags().UintVar(&moodFlag, "mood", 0, "Primary mood id")
	todayCmd.Flags().UintSliceVar(&secondaryFlag, "secondary", nil, "Up to two secondary mood ids")
	todayCmd.Flags().StringSliceVar(&tagsFlag, "tags", nil, "Comma separated tags")

	listCmd.Flags().IntVar(&pageFlag, "page", 1, "Page number, starting at 1")
	listCmd.Flags().IntVar(&pageSizeFlag, "page-size", 0, "Entries per page (default JOURNAL_PAGE_SIZE)")

	filterCmd.Flags().StringVar(&startFlag, "start", "", "Earliest date, yyyy-MM-dd")
	filterCmd.Flags().StringVar(&endFlag, "end", "", "Latest date, yyyy-MM-dd")
	filterCmd.Flags().IntVar(&moodIDFlag, "mood", 0, "Primary mood id")
	filterCmd.Flags().StringVar(&tagTextFlag, "tag", "", "Tag name fragment, case-insensitive")

	rootCmd.AddCommand(todayCmd, showCmd, deleteCmd, listCmd, searchCmd, filterCmd)
}
