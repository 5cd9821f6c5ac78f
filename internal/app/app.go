package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/leavehub/leave-backend-go/internal/config"
	"github.com/leavehub/leave-backend-go/internal/pkg/cron"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/leavehub/leave-backend-go/internal/pkg/email"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

// App owns the process resources: the pool, the HTTP server and the scheduler.
type App struct {
	cfg       *config.Config
	db        *database.DB
	services  Services
	server    *http.Server
	scheduler *cron.Scheduler
}

// New connects to PostgreSQL and wires every layer on top of it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize email service: %w", err)
	}

	repos := PostgresRepositories(db)
	services, err := NewServices(cfg, repos, emailService)
	if err != nil {
		db.Close()
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		db:       db,
		services: services,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.App.Port),
			Handler:           NewHandler(cfg, logger, repos, services),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			IdleTimeout:       120 * time.Second,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
		},
	}

	// Notification streams never go idle; closing the hub lets Shutdown drain them
	a.server.RegisterOnShutdown(services.Hub.Close)

	if cfg.Cron.Enabled {
		a.scheduler = cron.NewScheduler()
		services.Maintenance.RegisterJobs(a.scheduler, cfg.Cron.NotificationCleanupEvery, cfg.Cron.LeaveBackfillEvery)
	}

	return a, nil
}

// DB exposes the pool to one-shot commands such as migrate.
func (a *App) DB() *database.DB {
	return a.db
}

func (a *App) Services() Services {
	return a.services
}

// Run serves until ctx is cancelled, then drains the server and stops the scheduler.
func (a *App) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Server running", "addr", a.server.Addr, "api_prefix", a.cfg.App.APIPrefix)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.scheduler != nil {
		a.scheduler.Start()
	}

	g.Go(func() error {
		<-ctx.Done()
		slog.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		err := a.server.Shutdown(shutdownCtx)
		if a.scheduler != nil {
			a.scheduler.Stop()
		}
		if err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		slog.Info("Server stopped")
		return nil
	})

	return g.Wait()
}

// Close releases the pool.
func (a *App) Close() {
	a.db.Close()
}
