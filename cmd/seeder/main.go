// Command seeder populates a development database with demo accounts,
// funded holdings, and an open campaign. It is intended for local
// environments, not production.
//
// Flags:
//
//	--native-balance  starting native balance credited to each demo account
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

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crowdpool/crowdpool-backend/internal/adapter/postgres"
	accountrepo "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/account"
	campaignrepo "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/campaign"
	holdingrepo "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/holding"
	"github.com/crowdpool/crowdpool-backend/internal/app"
	"github.com/crowdpool/crowdpool-backend/internal/config"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

const demoPassword = "crowdpool-demo"

var demoAccounts = []struct {
	email       string
	displayName string
}{
	{"owner@crowdpool.dev", "Demo Owner"},
	{"investor1@crowdpool.dev", "Demo Investor One"},
	{"investor2@crowdpool.dev", "Demo Investor Two"},
}

func main() {
	nativeBalance := flag.Int64("native-balance", 1_000_000, "starting native balance per demo account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	accounts := accountrepo.New(pool)
	holdings := holdingrepo.New(pool)
	campaigns := campaignrepo.New(pool)

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), cfg.Auth.BCryptCost)
	if err != nil {
		logger.Error("hash demo password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	now := time.Now()
	var seeded []*domain.Account
	for _, d := range demoAccounts {
		acc := &domain.Account{
			ID:           uuid.New(),
			Email:        d.email,
			DisplayName:  d.displayName,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := accounts.Create(ctx, acc); err != nil {
			logger.Error("seed account failed",
				slog.String("email", d.email),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		if err := holdings.Credit(ctx, domain.NativeAsset(), acc.ID, domain.NewAmount(*nativeBalance)); err != nil {
			logger.Error("credit holding failed",
				slog.String("email", d.email),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}

		seeded = append(seeded, acc)
		logger.Info("seeded account", slog.String("email", d.email), slog.String("id", acc.ID.String()))
	}

	campaign, err := domain.NewCampaign(seeded[0].ID, domain.CampaignConfig{
		Description: "Demo campaign: neighborhood solar array",
		FeePercent:  5,
		SoftCap:     domain.NewAmount(10_000),
		HardCap:     domain.NewAmount(100_000),
		ClosingTime: now.Add(30 * 24 * time.Hour),
	}, now)
	if err != nil {
		logger.Error("build demo campaign", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := campaigns.Create(ctx, campaign); err != nil {
		logger.Error("seed campaign failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("seeded campaign",
		slog.String("id", campaign.ID.String()),
		slog.String("owner", seeded[0].Email),
	)
}
