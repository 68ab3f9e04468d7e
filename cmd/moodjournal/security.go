package main

import (
	"errors"
	"fmt"

	"github.com/localnerve/moodjournal/internal/services"
	"github.com/spf13/cobra"
)

var pinCmd = &cobra.Command{
	Use:   "pin",
	Short: "Manage the journal PIN",
}

var pinStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether a PIN is set",
	Args:  cobra.NoArgs,
	RunE: withApp(false, func(cmd *cobra.Command, args []string, a *journalApp) error {
		hasPin, err := a.security.HasPin()
		if err != nil {
			return err
		}
		if done, err := printJSON(cmd, map[string]bool{"hasPin": hasPin}); done {
			return err
		}
		if hasPin {
			fmt.Fprintln(cmd.OutOrStdout(), "PIN is set")
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No PIN set")
		}
		return nil
	}),
}

var pinSetCmd = &cobra.Command{
	Use:   "set [new-pin]",
	Short: "Set or replace the PIN. Replacing requires --pin with the current one.",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(true, func(cmd *cobra.Command, args []string, a *journalApp) error {
		if err := a.security.SetPin(args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "PIN updated")
		return nil
	}),
}

var pinVerifyCmd = &cobra.Command{
	Use:   "verify [pin]",
	Short: "Check a PIN without unlocking anything",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(false, func(cmd *cobra.Command, args []string, a *journalApp) error {
		ok, err := a.security.VerifyPin(args[0])
		if err != nil {
			return err
		}
		if done, err := printJSON(cmd, map[string]bool{"valid": ok}); done {
			return err
		}
		if !ok {
			return errors.New("incorrect PIN")
		}
		fmt.Fprintln(cmd.OutOrStdout(), "PIN accepted")
		return nil
	}),
}

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: withApp(false, func(cmd *cobra.Command, args []string, a *journalApp) error {
		var (
			theme string
			err   error
		)
		switch {
		case len(args) == 0:
			theme, err = a.settings.GetTheme()
		case args[0] == "toggle":
			theme, err = a.settings.ToggleTheme()
		default:
			theme, err = a.settings.SetTheme(args[0])
		}
		if err != nil {
			var ve *services.ValidationError
			if errors.As(err, &ve) {
				return fmt.Errorf("theme must be %s or %s", services.ThemeLight, services.ThemeDark)
			}
			return err
		}
		if done, err := printJSON(cmd, map[string]string{"theme": theme}); done {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme)
		return nil
	}),
}

func init() {
	pinCmd.AddCommand(pinStatusCmd, pinSetCmd, pinVerifyCmd)
	rootCmd.AddCommand(pinCmd, themeCmd)
}
