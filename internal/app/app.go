// Package app wires configuration, storage, the catalog and the HTTP server
// into one process.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/MrSnakeDoc/poetry/internal/bootstrap"
	"github.com/MrSnakeDoc/poetry/internal/catalog"
	"github.com/MrSnakeDoc/poetry/internal/config"
	"github.com/MrSnakeDoc/poetry/internal/domain"
	"github.com/MrSnakeDoc/poetry/internal/httpserver"
	"github.com/MrSnakeDoc/poetry/internal/httpserver/deps"
	"github.com/MrSnakeDoc/poetry/internal/logger"
	"github.com/MrSnakeDoc/poetry/internal/sources/seed"
	"github.com/MrSnakeDoc/poetry/internal/storage"
	"github.com/MrSnakeDoc/poetry/internal/utils"
	"github.com/MrSnakeDoc/poetry/internal/version"
	"github.com/MrSnakeDoc/poetry/internal/view"
)

type App struct {
	cfg     *config.Config
	logger  logger.Logger
	kv      storage.KV
	catalog *catalog.Store
	prefs   *storage.Preferences
	boot    *bootstrap.Bootstrap
	started time.Time
}

// New opens storage and builds the catalog. Nothing is loaded until
// Bootstrap (or Serve) runs.
func New(ctx context.Context, cfg *config.Config, log logger.Logger) (*App, error) {
	kv, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", cfg.Storage, err)
	}
	log.Info("storage ready", logger.String("backend", kv.Backend()))

	store := catalog.New(
		storage.NewSnapshots(kv, log),
		log,
		catalog.WithValidateOnLoad(cfg.ValidateOnLoad),
	)
	prefs := storage.NewPreferences(kv)

	return &App{
		cfg:     cfg,
		logger:  log,
		kv:      kv,
		catalog: store,
		prefs:   prefs,
		boot:    bootstrap.New(store, prefs, seedFunc(cfg.SeedFile, log), log),
		started: time.Now(),
	}, nil
}

func seedFunc(path string, log logger.Logger) bootstrap.SeedFunc {
	return func() ([]domain.Poem, error) {
		loader := seed.NewLoader(path)
		f, err := loader.Load()
		if err != nil {
			return nil, err
		}
		poems, err := seed.NewMapper().MapPoems(f)
		if err != nil {
			return nil, err
		}
		log.Debug("seed dataset loaded",
			logger.String("source", loader.Source()),
			logger.Int("poems", len(poems)))
		return poems, nil
	}
}

func (a *App) Config() *config.Config            { return a.cfg }
func (a *App) Logger() logger.Logger             { return a.logger }
func (a *App) Catalog() *catalog.Store           { return a.catalog }
func (a *App) Preferences() *storage.Preferences { return a.prefs }

// Bootstrap loads or seeds the catalog and, when coord is set, draws the
// first view.
func (a *App) Bootstrap(ctx context.Context, coord *view.Coordinator) (bootstrap.Result, error) {
	return a.boot.Run(ctx, coord)
}

// Serve bootstraps the catalog and runs the HTTP server until ctx is
// cancelled or SIGINT/SIGTERM arrives.
func (a *App) Serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("starting poetry",
		logger.String("version", version.Version),
		logger.String("commit", version.Commit),
		logger.String("listen", a.cfg.ListenPort))

	if _, err := a.Bootstrap(ctx, nil); err != nil {
		return err
	}

	server := httpserver.New(a.cfg, a.logger, deps.Deps{
		Logger:          a.logger,
		StartTime:       a.started,
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		AllowedHosts:    a.cfg.AllowedHosts,
		AllowedCIDRS:    a.cfg.AllowedCIDRS,
		TrustProxy:      a.cfg.TrustProxy,
		RateLimitBurst:  a.cfg.RateLimitBurst,
		RateLimitPerMin: a.cfg.RateLimitPerMin,
		Catalog:         a.catalog,
		Prefs:           a.prefs,
		Storage:         a.kv,
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Start(); err != nil {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		a.logger.Info("shutting down gracefully")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Stop(shutdownCtx); err != nil {
			return fmt.Errorf("failed to stop server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	a.logger.Info("poetry stopped cleanly")
	return nil
}

// Close releases the storage backend and flushes the logger.
func (a *App) Close() {
	utils.Close(a.kv, a.kv.Backend()+" storage", a.logger)
	_ = a.logger.Sync()
}
