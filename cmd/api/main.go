package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leavehub/leave-backend-go/internal/app"
	"github.com/leavehub/leave-backend-go/internal/config"
	"github.com/leavehub/leave-backend-go/internal/pkg/database"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveCmd := &cli.Command{
		Name:   "serve",
		Usage:  "Run the HTTP API (default)",
		Flags:  serveFlags(),
		Action: serve,
	}

	cmd := &cli.Command{
		Name:    "leave-api",
		Usage:   "Leave management backend",
		Version: app.Version,
		Flags:   serveFlags(),
		Action:  serve,
		Commands: []*cli.Command{
			serveCmd,
			{
				Name:  "migrate",
				Usage: "Apply the embedded database schema",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						return database.Migrate(ctx, a.DB())
					})
				},
			},
			{
				Name:  "backfill-leave-days",
				Usage: "Store requested days on leaves created before the column existed",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						updated, err := a.Services().Leave.BackfillRequestedDays(ctx)
						if err != nil {
							return err
						}
						slog.Info("Backfilled leave requested days", "count", updated)
						return nil
					})
				},
			},
			{
				Name:  "cleanup-notifications",
				Usage: "Delete read notifications older than the given age",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "older-than",
						Value: 720 * time.Hour,
						Usage: "Minimum age of read notifications to delete",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					olderThan := cmd.Duration("older-than")
					return withApp(ctx, func(ctx context.Context, a *app.App) error {
						deleted, err := a.Services().Notification.CleanupRead(ctx, olderThan)
						if err != nil {
							return err
						}
						slog.Info("Deleted read notifications", "count", deleted, "older_than", olderThan)
						return nil
					})
				},
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "migrate",
			Usage: "Apply the database schema before serving",
		},
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	migrate := cmd.Bool("migrate")
	return withApp(ctx, func(ctx context.Context, a *app.App) error {
		if migrate {
			if err := database.Migrate(ctx, a.DB()); err != nil {
				return err
			}
		}
		return a.Run(ctx)
	})
}

// withApp loads configuration, installs the process logger and hands a
// wired App to fn, closing it afterwards.
func withApp(ctx context.Context, fn func(ctx context.Context, a *app.App) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	logger := app.NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, a)
}
