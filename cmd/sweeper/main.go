// Command sweeper periodically reports open campaigns whose closing time
// has passed. The engine itself enforces closing time on every contribution,
// so the sweeper is read-only: it gives operators and owners visibility into
// campaigns that are expired but not yet closed.
//
// The schedule is a cron expression from SweeperConfig (default every 5m).
// Exit codes: 0 = clean shutdown, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/crowdpool/crowdpool-backend/internal/adapter/postgres"
	campaignrepo "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/campaign"
	"github.com/crowdpool/crowdpool-backend/internal/app"
	"github.com/crowdpool/crowdpool-backend/internal/config"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	campaigns := campaignrepo.New(pool)

	c := cron.New()
	_, err = c.AddFunc(cfg.Sweeper.Schedule, func() {
		sweep(ctx, logger, campaigns, cfg.Sweeper.BatchSize)
	})
	if err != nil {
		logger.Error("invalid sweeper schedule",
			slog.String("schedule", cfg.Sweeper.Schedule),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	logger.Info("sweeper started", slog.String("schedule", cfg.Sweeper.Schedule))
	c.Start()

	<-ctx.Done()

	logger.Info("sweeper stopping")
	<-c.Stop().Done()
}

type expiredLister interface {
	ListExpiredOpen(ctx context.Context, now time.Time, limit int) ([]*domain.Campaign, error)
}

func sweep(ctx context.Context, logger *slog.Logger, campaigns expiredLister, batchSize int) {
	sweepCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	expired, err := campaigns.ListExpiredOpen(sweepCtx, time.Now(), batchSize)
	if err != nil {
		logger.Error("sweep failed", slog.String("error", err.Error()))
		return
	}

	for _, c := range expired {
		logger.Warn("campaign past closing time but still open",
			slog.String("campaign_id", c.ID.String()),
			slog.String("owner", c.Owner.String()),
			slog.Time("closing_time", c.Config.ClosingTime),
		)
	}

	logger.Info("sweep completed", slog.Int("expired_open", len(expired)))
}
