package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/poetry/internal/app"
	"github.com/MrSnakeDoc/poetry/internal/config"
	"github.com/MrSnakeDoc/poetry/internal/logger"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "poetry",
	Short: "A small persisted poem catalog",
	Long: `poetry keeps a collection of poems with favorites and filters.
It serves a web page and JSON API, and the same catalog can be browsed
and edited from the command line. Storage is chosen with POETRY_STORAGE.`,
	SilenceUsage: true,
}

// Execute runs the root command. Called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// openApp loads the configuration and opens storage. One-shot commands
// only log warnings unless --verbose is set, so their stdout stays clean.
func openApp(ctx context.Context, quiet bool) (*app.App, error) {
	cfg := config.Load()

	level := cfg.LogLevel
	switch {
	case verbose:
		level = "debug"
	case quiet:
		level = "warn"
	}

	return app.New(ctx, cfg, logger.New(level, cfg.PrettyLog))
}

// withCatalog opens the app and runs the bootstrap before fn.
func withCatalog(ctx context.Context, fn func(a *app.App) error) error {
	a, err := openApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.Bootstrap(ctx, nil); err != nil {
		return err
	}
	return fn(a)
}
