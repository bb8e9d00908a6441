// Package bootstrap wires all dependencies and starts the application.
package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/artpar/superheroes/adapters/clock"
	apihttp "github.com/artpar/superheroes/adapters/http"
	"github.com/artpar/superheroes/adapters/idgen"
	"github.com/artpar/superheroes/adapters/memory"
	"github.com/artpar/superheroes/adapters/metrics"
	"github.com/artpar/superheroes/adapters/postgres"
	"github.com/artpar/superheroes/adapters/sqlite"
	"github.com/artpar/superheroes/app"
	"github.com/artpar/superheroes/config"
	"github.com/artpar/superheroes/ports"
)

// Options controls application initialization.
type Options struct {
	// ConfigPath is the YAML file to load. A missing file means defaults
	// plus environment.
	ConfigPath string

	// Version is reported by /version.
	Version string

	// HotReload watches the config file and SIGHUP while running.
	HotReload bool

	// Registry receives the metrics instead of the global registry.
	Registry *prometheus.Registry
}

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Holder
	DB         ports.Database
	Stores     ports.Stores
	Service    *app.HeroService
	HTTPServer *http.Server
	Metrics    *metrics.Collector

	hotReload bool
	output    *switchWriter
}

// New creates and initializes the application.
func New(opts Options) (*App, error) {
	output := newSwitchWriter(os.Stdout)
	logger := zerolog.New(output).With().Timestamp().Logger()

	holder, err := config.NewHolder(opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}
	cfg := holder.Get()
	applyLogging(output, cfg.Logging)

	logger.Info().
		Str("driver", cfg.Database.Driver).
		Str("version", opts.Version).
		Msg("initializing superheroes")

	a := &App{
		Logger:    logger,
		Config:    holder,
		hotReload: opts.HotReload,
		output:    output,
	}

	holder.OnChange(func(c *config.Config) {
		applyLogging(output, c.Logging)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, stores, err := OpenDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	a.DB = db
	a.Stores = stores

	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info().Msg("database schema up to date")

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		if opts.Registry != nil {
			a.Metrics = metrics.NewWithRegistry(opts.Registry)
			metricsHandler = promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{})
		} else {
			a.Metrics = metrics.New()
			metricsHandler = promhttp.Handler()
		}
		a.wireReloadMetrics()
		logger.Info().Str("path", cfg.Metrics.Path).Msg("prometheus metrics enabled")
	}

	a.Service = app.NewHeroService(stores, clock.Real{}, logger)

	routerCfg := apihttp.RouterConfig{
		Heroes:         apihttp.NewHeroHandler(a.Service, logger, a.Metrics),
		Health:         apihttp.NewHealthHandler(db),
		Logger:         logger,
		Version:        opts.Version,
		IDs:            idgen.UUID{},
		Metrics:        a.Metrics,
		MetricsHandler: metricsHandler,
		EnableOpenAPI:  cfg.OpenAPI.Enabled,
		RequestTimeout: cfg.Server.WriteTimeout,
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsPath = cfg.Metrics.Path
	}

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      apihttp.NewRouter(routerCfg),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return a, nil
}

// OpenDatabase opens the backend named by cfg.Driver. The schema is not
// migrated.
func OpenDatabase(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (ports.Database, ports.Stores, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.DSN)
		if err != nil {
			return nil, ports.Stores{}, err
		}
		logger.Info().Str("dsn", cfg.DSN).Msg("sqlite database opened")
		return db, ports.Stores{
			Heroes:     sqlite.NewHeroStore(db),
			Powers:     sqlite.NewPowerStore(db),
			HeroPowers: sqlite.NewHeroPowerStore(db),
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, ports.Stores{}, err
		}
		logger.Info().Msg("postgres connection pool ready")
		return db, ports.Stores{
			Heroes:     postgres.NewHeroStore(db),
			Powers:     postgres.NewPowerStore(db),
			HeroPowers: postgres.NewHeroPowerStore(db),
		}, nil

	case config.DriverMemory:
		backend := memory.NewBackend()
		logger.Warn().Msg("using in-memory database, data is lost on exit")
		return backend, backend.Stores(), nil

	default:
		return nil, ports.Stores{}, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func (a *App) wireReloadMetrics() {
	m := a.Metrics
	a.Config.OnChange(func(*config.Config) {
		m.ConfigReloads.Inc()
		m.ConfigLastReload.SetToCurrentTime()
	})
	a.Config.OnError(func(error) {
		m.ConfigReloadErrors.Inc()
	})
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run() error {
	if a.hotReload {
		if err := a.Config.WatchFile(); err != nil {
			a.Logger.Warn().Err(err).Msg("config file watch disabled")
		}
		a.Config.WatchSignals()
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		a.Shutdown()
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if a.Config != nil {
		a.Config.Stop()
	}

	// Shutdown HTTP server
	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
		}
	}

	// Close database
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("database close error")
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}
