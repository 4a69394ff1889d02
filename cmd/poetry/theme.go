package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/render"
)

var themeCmd = &cobra.Command{
	Use:       "theme [light|dark|toggle]",
	Short:     "Show or change the display theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"light", "dark", "toggle"},
	RunE:      runTheme,
}

func runTheme(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx := cmd.Context()
	prefs := a.Preferences()

	var theme domain.Theme
	switch {
	case len(args) == 0:
		theme, err = prefs.Theme(ctx)
	case args[0] == "toggle":
		theme, err = prefs.ToggleTheme(ctx)
	default:
		theme = domain.ParseTheme(args[0])
		err = prefs.SetTheme(ctx, theme)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.ThemeLabel(theme))
	return nil
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
