package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/poetry/internal/app"
	"github.com/MrSnakeDoc/poetry/internal/domain"
)

var favCmd = &cobra.Command{
	Use:   "fav <id>",
	Short: "Toggle a poem's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runFav,
}

func runFav(cmd *cobra.Command, args []string) error {
	id := args[0]
	return withCatalog(cmd.Context(), func(a *app.App) error {
		p, found, err := a.Catalog().ToggleFavorite(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}

		state := "removed from"
		if p.IsFavorite {
			state = "added to"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%q %s favorites\n", p.Title, state)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(favCmd)
}
