package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/poetry/internal/app"
)

var (
	addAuthor   string
	addTitle    string
	addCategory string
	addBody     string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a poem",
	Long: `Add a poem to the catalog. All four fields are required; when --body
is omitted the poem text is read from standard input.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	body := addBody
	if body == "" {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read poem from stdin: %w", err)
		}
		body = string(raw)
	}

	return withCatalog(cmd.Context(), func(a *app.App) error {
		p, err := a.Catalog().Add(cmd.Context(), addAuthor, addTitle, addCategory, body)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q by %s (%s)\n", p.Title, p.Author, p.ID)
		return nil
	})
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVar(&addAuthor, "author", "", "Poet name")
	addCmd.Flags().StringVar(&addTitle, "title", "", "Poem title")
	addCmd.Flags().StringVar(&addCategory, "category", "", "Theme, e.g. Love or Nature")
	addCmd.Flags().StringVar(&addBody, "body", "", "Poem text (default: read stdin)")
}
