package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/storypath/participant-api/internal/config"
	"github.com/storypath/participant-api/internal/database"
	"github.com/storypath/participant-api/internal/gateway"
	"github.com/storypath/participant-api/internal/handler/health"
	"github.com/storypath/participant-api/internal/migrations"
	"github.com/storypath/participant-api/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	// --- Profile store (SQLite) ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to sqlite: %w", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("profile store ready", "path", cfg.DBPath)

	// --- Backend gateway ---
	backend := gateway.New(cfg.APIBaseURL, cfg.APIToken, cfg.APITimeout)
	logger.Info("backend gateway configured", "base_url", cfg.APIBaseURL)

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Deps{
		Profiles:       server.NewSQLiteStore(db),
		Backend:        backend,
		DeviceUsername: cfg.DeviceUsername,
		HealthChecks: map[string]health.Checker{
			"profile-db": dbChecker{db},
			"backend":    backend,
		},
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }
