// Command sweeper marks tasks as stale when they have not been touched
// within the configured number of days. It is intended to be invoked by
// an external cron job, not as an in-process goroutine.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/mkossowski/agendum/internal/adapter/postgres"
	"github.com/mkossowski/agendum/internal/adapter/postgres/item"
	"github.com/mkossowski/agendum/internal/adapter/postgres/profile"
	"github.com/mkossowski/agendum/internal/app"
	"github.com/mkossowski/agendum/internal/config"
	"github.com/mkossowski/agendum/internal/service/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc := workflow.NewService(
		logger,
		item.New(pool),
		profile.New(pool),
		postgres.NewTxManager(pool),
		cfg.Engine.StaleAfterDays,
		cfg.Engine.FocusTopN,
	)

	marked, err := svc.MarkStaleItems(ctx, cfg.Engine.StaleAfterDays)
	if err != nil {
		logger.Error("stale sweep failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("stale sweep completed",
		slog.Int64("marked", marked),
		slog.Int("days_inactive", cfg.Engine.StaleAfterDays),
	)
}
