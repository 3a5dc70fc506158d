// Package main is the entry point for the FX rates service.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fxrates/internal/config"
	"fxrates/internal/fx"
	"fxrates/internal/metrics"
	"fxrates/internal/repository"
	"fxrates/internal/service"
)

// App holds all application dependencies and manages their lifecycle.
type App struct {
	cfg        *config.Config
	logger     *zap.SugaredLogger
	db         *sql.DB
	registry   *prometheus.Registry
	dataset    *fx.Dataset
	httpServer *http.Server
}

// NewApp connects to storage, loads the rate dataset and wires the HTTP server.
func NewApp(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (*App, error) {
	app := &App{
		cfg:      cfg,
		logger:   logger,
		registry: prometheus.NewRegistry(),
	}

	if err := app.initStorage(ctx); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.loadDataset(ctx); err != nil {
		_ = app.close()
		return nil, err
	}

	if err := app.initServices(); err != nil {
		_ = app.close()
		return nil, err
	}

	return app, nil
}

// close releases the database connection
func (app *App) close() error {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			return fmt.Errorf("db close: %w", err)
		}
	}
	return nil
}

func (app *App) initStorage(ctx context.Context) error {
	db, err := repository.NewPostgresDB(ctx, &app.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to Postgres: %w", err)
	}
	app.db = db

	if err := repository.RunMigrations(ctx, app.db, app.logger); err != nil {
		return fmt.Errorf("run DB migrations: %w", err)
	}
	return nil
}

func (app *App) loadDataset(ctx context.Context) error {
	loadCtx, cancel := context.WithTimeout(ctx, time.Duration(app.cfg.Rates.LoadTimeoutSec)*time.Second)
	defer cancel()

	start := time.Now()
	ds, err := repository.NewPostgresRateRepository(app.db).LoadDataset(loadCtx)
	if err != nil {
		return fmt.Errorf("load fx rates: %w", err)
	}
	app.dataset = ds

	if !hasRate(ds, app.cfg.Rates.DefaultRate) {
		app.logger.Warnw("Default rate has no stored tables", "default_rate", app.cfg.Rates.DefaultRate)
	}
	app.logger.Infow("Loaded fx rates", "tables", ds.Len(), "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func hasRate(ds *fx.Dataset, rate string) bool {
	for _, k := range ds.Keys() {
		if k.RateName == rate {
			return true
		}
	}
	return false
}

func (app *App) initServices() error {
	reader, err := metrics.NewInstrumentedReader(
		fx.NewInMemoryReader(app.dataset, app.cfg.Rates.DefaultRate),
		app.registry,
	)
	if err != nil {
		return fmt.Errorf("register reader metrics: %w", err)
	}

	rateService := service.NewRateService(reader, app.dataset, app.logger)
	app.initHTTP(rateService)
	return nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (app *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Infow("HTTP server listening", "port", app.cfg.Server.Port)
		if err := app.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown: triggered by context cancellation (signal or server failure).
	g.Go(func() error {
		<-ctx.Done()
		return app.shutdown()
	})

	return g.Wait()
}

// shutdown stops accepting requests, drains in-flight ones, then closes the database.
func (app *App) shutdown() error {
	app.logger.Infow("Shutting down server...")

	var errs []error

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.httpServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Errorw("HTTP server shutdown error", "error", err)
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}

	if err := app.close(); err != nil {
		app.logger.Errorw("Connection cleanup errors", "error", err)
		errs = append(errs, err)
	}

	app.logger.Infow("Shutdown complete")
	return errors.Join(errs...)
}
