// Package server wires and runs the deposits API: storage, services, the
// HTTP router and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrijs2005/trackmydeposits/internal/logging"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/config"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/httpapi"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/metrics"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/trackmydeposits/internal/server/services"
)

// Test seams.
var (
	openPostgres = func(ctx context.Context, dsn string) (repomanager.RepositoryManager, error) {
		m, err := repomanager.OpenPostgres(ctx, dsn)
		if err != nil {
			return nil, err
		}
		return m, nil
	}
	newObjectStore = func(ctx context.Context, cfg *config.Config) (services.ObjectStore, error) {
		s, err := services.NewS3Store(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   repomanager.RepositoryManager
	limiter *httpapi.RateLimiter
	routes  httpapi.Options
}

// NewApp opens storage, applies migrations and builds the services. A
// broken object store only disables exports.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)

	repos, err := openRepositories(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var exporter *services.Exporter
	store, err := newObjectStore(ctx, c)
	if err != nil {
		logger.Warn(ctx, "exports disabled", "error", err)
	} else {
		exporter = services.NewExporter(store, c.ExportURLValidity)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var limiter *httpapi.RateLimiter
	if c.RateLimit > 0 {
		limiter = httpapi.NewRateLimiter(c.RateLimit, c.RateBurst)
	}

	opts := httpapi.Options{
		Users:          services.NewUserService(repos, c, logger),
		Deposits:       services.NewDepositService(repos, exporter, logger),
		Log:            logger,
		Metrics:        metrics.NewCollector(reg),
		MetricsHandler: metrics.Handler(reg),
		Limiter:        limiter,
		CORSOrigins:    c.CORSOrigins,
		CookieSecure:   c.CookieSecure,
		TrustedProxies: c.TrustedProxies,
	}

	return &App{config: c, logger: logger, repos: repos, limiter: limiter, routes: opts}, nil
}

func openRepositories(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	if c.InMemory() {
		return repomanager.NewInMemoryRepositoryManager(), nil
	}

	m, err := openPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := m.RunMigrations(ctx); err != nil {
		_ = m.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return m, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves the API until ctx is cancelled or a termination signal
// arrives, then releases storage.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	srv := httpapi.NewServer(app.config.EndpointAddr, httpapi.NewRouter(app.routes), app.logger)
	err := srv.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "server stopped", "error", err)
	}

	if app.limiter != nil {
		app.limiter.Stop()
	}
	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Error(ctx, "closing storage", "error", cerr)
	}

	app.logger.Info(ctx, "App stopped")
	return err
}
