package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/poetry/internal/app"
	"github.com/MrSnakeDoc/poetry/internal/render"
)

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "List the distinct authors in the catalog",
	Args:  cobra.NoArgs,
	RunE:  runAuthors,
}

func runAuthors(cmd *cobra.Command, args []string) error {
	return withCatalog(cmd.Context(), func(a *app.App) error {
		return render.Lines(cmd.OutOrStdout(), a.Catalog().Authors())
	})
}

func init() {
	rootCmd.AddCommand(authorsCmd)
}
