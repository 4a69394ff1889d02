package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/poetry/internal/render"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

var (
	listQuery     string
	listAuthor    string
	listCategory  string
	listFavorites bool
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List poems, optionally filtered",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	var presenter view.Presenter = render.NewText(cmd.OutOrStdout())
	if listJSON {
		presenter = &render.JSON{W: cmd.OutOrStdout(), Indent: true}
	}

	coord := view.New(a.Catalog(), presenter)
	coord.Restore(view.State{
		Query:     listQuery,
		Author:    listAuthor,
		Category:  listCategory,
		Favorites: listFavorites,
	})

	_, err = a.Bootstrap(cmd.Context(), coord)
	return err
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Case-insensitive text to find in title or body")
	listCmd.Flags().StringVar(&listAuthor, "author", "", "Only poems by this author")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Only poems in this category")
	listCmd.Flags().BoolVar(&listFavorites, "favorites", false, "Only favorite poems")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
}
