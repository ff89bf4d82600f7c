// Package campaign implements the campaign repository using PostgreSQL.
// A campaign row carries the config and close state; its ledger lives in
// ledger_entries, one row per investor in contribution order.
package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// Repo provides campaign persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new campaign repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Amounts travel as text: NUMERIC(78,0) columns hold wei-scale integers that
// overflow every native scan target.
const campaignColumns = `
    id, owner_id, description, fee_percent,
    soft_cap::text, hard_cap::text, closing_time, close_state,
    created_at, updated_at`

const getSQL = `SELECT` + campaignColumns + `
FROM campaigns
WHERE id = $1`

const getForUpdateSQL = getSQL + `
FOR UPDATE`

const ledgerSQL = `
SELECT investor_id, amount::text, position
FROM ledger_entries
WHERE campaign_id = $1
ORDER BY position`

const insertSQL = `
INSERT INTO campaigns (
    id, owner_id, description, fee_percent,
    soft_cap, hard_cap, closing_time, close_state,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric, $7, $8, $9, $10)`

const updateSQL = `
UPDATE campaigns
SET close_state = $2, updated_at = $3
WHERE id = $1`

const upsertEntrySQL = `
INSERT INTO ledger_entries (campaign_id, position, investor_id, amount)
VALUES ($1, $2, $3, $4::numeric)
ON CONFLICT (campaign_id, investor_id)
DO UPDATE SET amount = EXCLUDED.amount`

const listExpiredOpenSQL = `
SELECT` + campaignColumns + `
FROM campaigns
WHERE close_state = 'OPEN' AND closing_time <= $1
ORDER BY closing_time
LIMIT $2`

// Create inserts a new campaign. The ledger is empty at creation, so only
// the campaign row is written.
func (r *Repo) Create(ctx context.Context, c *domain.Campaign) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, insertSQL,
		c.ID, c.Owner, c.Config.Description, c.Config.FeePercent,
		c.Config.SoftCap.String(), c.Config.HardCap.String(),
		c.Config.ClosingTime, string(c.Close),
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "campaign", c.ID)
	}
	return nil
}

// Get loads a campaign with its full ledger.
// Returns domain.ErrNotFound if the campaign does not exist.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return r.get(ctx, id, getSQL)
}

// GetForUpdate loads a campaign with its full ledger, taking a row lock on
// the campaign so concurrent mutations of the same campaign serialize.
// Only valid inside RunInTx.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return r.get(ctx, id, getForUpdateSQL)
}

func (r *Repo) get(ctx context.Context, id uuid.UUID, sql string) (*domain.Campaign, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c, err := scanCampaign(q.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, postgres.MapError(err, "campaign", id)
	}

	rows, err := q.Query(ctx, ledgerSQL, id)
	if err != nil {
		return nil, postgres.MapError(err, "campaign ledger", id)
	}
	defer rows.Close()

	entries, err := scanLedgerEntries(rows)
	if err != nil {
		return nil, postgres.MapError(err, "campaign ledger", id)
	}

	c.Ledger = domain.LedgerFromEntries(entries)
	return c, nil
}

// Save writes the campaign's close state and upserts every ledger entry.
// Positions never change, so the upsert only ever touches amounts.
func (r *Repo) Save(ctx context.Context, c *domain.Campaign) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	c.UpdatedAt = time.Now()
	tag, err := q.Exec(ctx, updateSQL, c.ID, string(c.Close), c.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "campaign", c.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("campaign %s: %w", c.ID, domain.ErrNotFound)
	}

	entries := c.Ledger.Entries()
	if len(entries) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(upsertEntrySQL, c.ID, e.Position, e.Investor, e.Amount.String())
	}
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return postgres.MapError(err, "campaign ledger", c.ID)
		}
	}
	return nil
}

// ListExpiredOpen returns up to limit open campaigns whose closing time has
// passed, oldest first. Used by the sweeper.
func (r *Repo) ListExpiredOpen(ctx context.Context, now time.Time, limit int) ([]*domain.Campaign, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, listExpiredOpenSQL, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list expired open campaigns: %w", err)
	}
	defer rows.Close()

	campaigns := []*domain.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, fmt.Errorf("list expired open campaigns: %w", err)
		}
		// The ledger is not needed for sweeping; leave it empty.
		c.Ledger = domain.NewLedger()
		campaigns = append(campaigns, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list expired open campaigns: %w", err)
	}
	return campaigns, nil
}

func scanCampaign(row pgx.Row) (*domain.Campaign, error) {
	var (
		c                domain.Campaign
		softCap, hardCap string
		closeState       string
	)
	err := row.Scan(
		&c.ID, &c.Owner, &c.Config.Description, &c.Config.FeePercent,
		&softCap, &hardCap, &c.Config.ClosingTime, &closeState,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if c.Config.SoftCap, err = domain.ParseAmount(softCap); err != nil {
		return nil, fmt.Errorf("soft_cap: %w", err)
	}
	if c.Config.HardCap, err = domain.ParseAmount(hardCap); err != nil {
		return nil, fmt.Errorf("hard_cap: %w", err)
	}
	c.Close = domain.CloseKind(closeState)
	return &c, nil
}

func scanLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	var entries []domain.LedgerEntry
	for rows.Next() {
		var (
			e      domain.LedgerEntry
			amount string
		)
		if err := rows.Scan(&e.Investor, &amount, &e.Position); err != nil {
			return nil, err
		}
		var err error
		if e.Amount, err = domain.ParseAmount(amount); err != nil {
			return nil, fmt.Errorf("ledger amount: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
