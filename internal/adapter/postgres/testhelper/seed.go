package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedAccount creates an account with a throwaway password hash.
// Returns a filled domain.Account.
func SeedAccount(t *testing.T, pool *pgxpool.Pool) domain.Account {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	acc := domain.Account{
		ID:           uuid.New(),
		Email:        "account-" + suffix + "@example.com",
		DisplayName:  "Account " + suffix,
		PasswordHash: "$2a$04$test-hash-" + suffix,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO accounts (id, email, display_name, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		acc.ID, acc.Email, acc.DisplayName, acc.PasswordHash, acc.CreatedAt, acc.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAccount insert: %v", err)
	}

	return acc
}

// SeedCampaign creates an open campaign owned by a fresh account.
// Returns the filled domain.Campaign.
func SeedCampaign(t *testing.T, pool *pgxpool.Pool, softCap, hardCap int64) *domain.Campaign {
	t.Helper()
	ctx := context.Background()

	owner := SeedAccount(t, pool)
	now := time.Now().UTC().Truncate(time.Microsecond)
	c := &domain.Campaign{
		ID:    uuid.New(),
		Owner: owner.ID,
		Config: domain.CampaignConfig{
			Description: "seed campaign " + uniqueSuffix(),
			FeePercent:  3,
			SoftCap:     domain.NewAmount(softCap),
			HardCap:     domain.NewAmount(hardCap),
			ClosingTime: now.Add(time.Hour),
		},
		Close:     domain.CloseKindOpen,
		Ledger:    domain.NewLedger(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO campaigns (id, owner_id, description, fee_percent, soft_cap, hard_cap, closing_time, close_state, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10)`,
		c.ID, c.Owner, c.Config.Description, c.Config.FeePercent,
		c.Config.SoftCap.String(), c.Config.HardCap.String(),
		c.Config.ClosingTime, string(c.Close), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCampaign insert: %v", err)
	}

	return c
}

// SeedHolding credits the holder with a balance of the asset.
func SeedHolding(t *testing.T, pool *pgxpool.Pool, holder uuid.UUID, asset domain.AssetID, balance int64) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO holdings (holder_id, asset, balance, updated_at)
		 VALUES ($1, $2, $3::numeric, now())
		 ON CONFLICT (holder_id, asset)
		 DO UPDATE SET balance = holdings.balance + EXCLUDED.balance`,
		holder, asset.String(), domain.NewAmount(balance).String(),
	)
	if err != nil {
		t.Fatalf("testhelper: SeedHolding insert: %v", err)
	}
}
