// Command cleanup-profiles removes postgres profile namespaces that have
// not been written for longer than the configured retention period. It is
// intended to be invoked by an external cron job.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres"
	"github.com/heartmarshall/mirrorme-backend/internal/adapter/postgres/entries"
	"github.com/heartmarshall/mirrorme-backend/internal/app"
	"github.com/heartmarshall/mirrorme-backend/internal/config"
)

func main() {
	dryRun := flag.Bool("dry-run", false, "only count stale profiles")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Storage.Driver != config.DriverPostgres {
		logger.Error("cleanup requires the postgres storage driver",
			slog.String("driver", cfg.Storage.Driver))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	repo := entries.New(pool)
	threshold := time.Now().AddDate(0, 0, -cfg.Storage.ProfileRetentionDays)

	if *dryRun {
		n, err := repo.CountStale(ctx, threshold)
		if err != nil {
			logger.Error("count stale profiles", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("dry run", slog.Int64("stale_profiles", n), slog.Time("threshold", threshold))
		return
	}

	deleted, err := repo.DeleteStale(ctx, threshold)
	if err != nil {
		logger.Error("delete stale profiles failed",
			slog.String("error", err.Error()),
			slog.Time("threshold", threshold),
		)
		os.Exit(1)
	}

	logger.Info("stale profiles deleted",
		slog.Int64("deleted", deleted),
		slog.Time("threshold", threshold),
	)
}
