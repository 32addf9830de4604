package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/starfav/internal/catalog"
	"github.com/MrSnakeDoc/starfav/internal/config"
	"github.com/MrSnakeDoc/starfav/internal/favorites"
	"github.com/MrSnakeDoc/starfav/internal/httpserver"
	"github.com/MrSnakeDoc/starfav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/starfav/internal/logger"
	"github.com/MrSnakeDoc/starfav/internal/sources/seed"
	"github.com/MrSnakeDoc/starfav/internal/utils"
	"github.com/MrSnakeDoc/starfav/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	service     *favorites.Service
	storeCloser io.Closer
}

// New loads the configuration and wires every component.
// It fails when the favorites store cannot be reached.
func New() (*App, error) {
	cfg := config.Load()
	return newApp(cfg, logger.New(cfg.LogLevel, cfg.PrettyLog))
}

func newApp(cfg *config.Config, loggerClient logger.Logger) (*App, error) {
	// Open the store early - fail fast if unavailable
	store, storeCloser, err := openStore(context.Background(), cfg, loggerClient)
	if err != nil {
		loggerClient.Error("failed to open favorites store",
			logger.String("backend", cfg.StoreBackend),
			logger.Error(err))
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreBackend, err)
	}
	loggerClient.Info("favorites store initialized", logger.String("backend", cfg.StoreBackend))

	service := favorites.NewService(store, cfg.StoreTimeout)

	catalogCfg := catalog.Config{
		BaseURL:  cfg.CatalogURL,
		Timeout:  cfg.CatalogTimeout,
		MaxPages: cfg.CatalogMaxPages,
	}
	if cfg.CatalogBreaker {
		bc := catalog.DefaultBreakerConfig()
		catalogCfg.Breaker = &bc
	}
	catalogClient := catalog.New(catalogCfg, loggerClient)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:       loggerClient,
		StartTime:    time.Now(),
		Build:        version.Get(),
		TimeNow:      time.Now,
		AllowedHosts: cfg.AllowedHosts,
		AllowedCIDRS: cfg.AllowedCIDRS,
		TrustProxy:   cfg.TrustProxy,
		Favorites:    service,
		Catalog:      catalogClient,
		StoreBackend: cfg.StoreBackend,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		service:     service,
		storeCloser: storeCloser,
	}, nil
}

// Run serves until SIGINT or SIGTERM.
func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting starfav %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("starfav %s", version.Get())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.run(ctx)
}

// run serves until ctx is done. The store handle is closed on every return path.
func (a *App) run(ctx context.Context) error {
	defer utils.MustClose(a.storeCloser, a.cfg.StoreBackend, a.logger)

	if a.cfg.SeedFile != "" {
		if err := a.seed(ctx); err != nil {
			return fmt.Errorf("failed to import seed file: %w", err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	a.logger.Info("✅ starfav stopped cleanly")
	return nil
}

func (a *App) seed(ctx context.Context) error {
	f, err := seed.NewLoader(a.cfg.SeedFile).Load()
	if err != nil {
		return err
	}
	a.logger.Info("seed file loaded",
		logger.String("file", a.cfg.SeedFile),
		logger.Int("entries", len(f.Favorites)))

	_, err = seed.Import(ctx, a.service, f, a.logger)
	return err
}
