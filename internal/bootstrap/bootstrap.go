// Package bootstrap runs the one-time startup sequence: restore the display
// preference, load or seed the catalog, and draw the first frame.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/poetry/internal/catalog"
	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

// Catalog is what bootstrap needs from catalog.Store.
type Catalog interface {
	InitializeFrom(ctx context.Context, seed catalog.SeedFunc) (catalog.Source, error)
	Authors() []string
	Count() int
}

type ThemeReader interface {
	Theme(ctx context.Context) (domain.Theme, error)
}

// SeedFunc produces the default dataset. It runs only when storage holds no
// usable snapshot.
type SeedFunc = catalog.SeedFunc

// Result summarises a completed bootstrap.
type Result struct {
	Source  catalog.Source
	Theme   domain.Theme
	Authors []string
	Count   int
}

type Bootstrap struct {
	catalog Catalog
	prefs   ThemeReader
	seed    SeedFunc
	logger  logger.Logger
}

func New(c Catalog, prefs ThemeReader, seed SeedFunc, log logger.Logger) *Bootstrap {
	return &Bootstrap{
		catalog: c,
		prefs:   prefs,
		seed:    seed,
		logger:  log,
	}
}

// Run executes the startup sequence once. coord may be nil when there is
// nothing to draw yet (the HTTP front-end renders per request).
//
// A failed seed write is logged and tolerated: the seeded poems are served
// from memory and the next mutation retries the write.
func (b *Bootstrap) Run(ctx context.Context, coord *view.Coordinator) (Result, error) {
	start := time.Now()

	theme, err := b.prefs.Theme(ctx)
	if err != nil {
		b.logger.Warn("failed to read theme preference, using light", logger.Error(err))
		theme = domain.ThemeLight
	}

	source, err := b.catalog.InitializeFrom(ctx, b.seed)
	switch {
	case err != nil && source == catalog.SourceSeed:
		b.logger.Warn("seeded poems could not be persisted", logger.Error(err))
	case err != nil:
		return Result{}, err
	}

	res := Result{
		Source:  source,
		Theme:   theme,
		Authors: b.catalog.Authors(),
		Count:   b.catalog.Count(),
	}

	b.logger.Info("bootstrap complete",
		logger.String("source", string(source)),
		logger.String("theme", string(theme)),
		logger.Int("poems", res.Count),
		logger.Int("authors", len(res.Authors)),
		logger.Duration("duration", time.Since(start)))

	if coord != nil {
		coord.SetTheme(theme)
		if err := coord.Refresh(); err != nil {
			return res, fmt.Errorf("failed to render first view: %w", err)
		}
	}

	return res, nil
}
