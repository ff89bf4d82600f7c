// Package holding implements the holdings book using PostgreSQL: one row per
// (holder, asset) pair. Holders are accounts or campaign custody ids. The
// book is the system of record for balances; Transfer is the only way value
// moves between holders.
package holding

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// Repo provides holdings persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new holdings repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Holding is one holder's balance of one asset.
type Holding struct {
	Holder  uuid.UUID
	Asset   domain.AssetID
	Balance domain.Amount
	Frozen  bool
}

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const balanceSQL = `
SELECT balance::text
FROM holdings
WHERE holder_id = $1 AND asset = $2`

// Both rows are locked in holder order so concurrent opposite-direction
// transfers cannot deadlock.
const lockPairSQL = `
SELECT holder_id, balance::text, frozen
FROM holdings
WHERE asset = $1 AND holder_id = ANY($2::uuid[])
ORDER BY holder_id
FOR UPDATE`

const debitSQL = `
UPDATE holdings
SET balance = balance - $3::numeric, updated_at = $4
WHERE holder_id = $1 AND asset = $2`

const creditSQL = `
INSERT INTO holdings (holder_id, asset, balance, updated_at)
VALUES ($1, $2, $3::numeric, $4)
ON CONFLICT (holder_id, asset)
DO UPDATE SET balance = holdings.balance + EXCLUDED.balance, updated_at = EXCLUDED.updated_at`

const setFrozenSQL = `
INSERT INTO holdings (holder_id, asset, balance, frozen, updated_at)
VALUES ($1, $2, 0, $3, $4)
ON CONFLICT (holder_id, asset)
DO UPDATE SET frozen = EXCLUDED.frozen, updated_at = EXCLUDED.updated_at`

// BalanceOf returns the holder's balance of the asset, zero if no row.
func (r *Repo) BalanceOf(ctx context.Context, asset domain.AssetID, holder uuid.UUID) (domain.Amount, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var raw string
	err := q.QueryRow(ctx, balanceSQL, holder, asset.String()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Amount{}, nil
		}
		return domain.Amount{}, postgres.MapError(err, "holding", holder)
	}
	return domain.ParseAmount(raw)
}

// Transfer moves amount of asset from one holder to another. Returns
// accepted=false without moving anything when the recipient's holding is
// frozen (the fungible-token refusal path). Returns ErrInsufficientFunds
// when the sender's balance does not cover the amount.
//
// Meant to run inside the caller's transaction; the row locks taken here
// hold until that transaction ends.
func (r *Repo) Transfer(ctx context.Context, asset domain.AssetID, from, to uuid.UUID, amount domain.Amount) (bool, error) {
	if amount.IsZero() {
		return true, nil
	}
	if from == to {
		return true, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, lockPairSQL, asset.String(), []uuid.UUID{from, to})
	if err != nil {
		return false, postgres.MapError(err, "holding", from)
	}
	defer rows.Close()

	var (
		fromBalance domain.Amount
		fromFound   bool
		toFrozen    bool
	)
	for rows.Next() {
		var (
			holder uuid.UUID
			raw    string
			frozen bool
		)
		if err := rows.Scan(&holder, &raw, &frozen); err != nil {
			return false, postgres.MapError(err, "holding", holder)
		}
		switch holder {
		case from:
			fromFound = true
			if fromBalance, err = domain.ParseAmount(raw); err != nil {
				return false, fmt.Errorf("holding balance: %w", err)
			}
		case to:
			toFrozen = frozen
		}
	}
	if err := rows.Err(); err != nil {
		return false, postgres.MapError(err, "holding", from)
	}
	rows.Close()

	if toFrozen {
		return false, nil
	}
	if !fromFound || fromBalance.Cmp(amount) < 0 {
		return false, fmt.Errorf("holder %s asset %s: %w", from, asset, domain.ErrInsufficientFunds)
	}

	now := time.Now()
	if _, err := q.Exec(ctx, debitSQL, from, asset.String(), amount.String(), now); err != nil {
		return false, postgres.MapError(err, "holding", from)
	}
	if _, err := q.Exec(ctx, creditSQL, to, asset.String(), amount.String(), now); err != nil {
		return false, postgres.MapError(err, "holding", to)
	}
	return true, nil
}

// Credit adds amount to the holder's balance, creating the row if needed.
// This is the external on-ramp: deposits from outside the system and seeding.
func (r *Repo) Credit(ctx context.Context, asset domain.AssetID, holder uuid.UUID, amount domain.Amount) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, creditSQL, holder, asset.String(), amount.String(), time.Now()); err != nil {
		return postgres.MapError(err, "holding", holder)
	}
	return nil
}

// SetFrozen marks a holding as refusing (or accepting) incoming transfers,
// creating a zero-balance row if needed.
func (r *Repo) SetFrozen(ctx context.Context, asset domain.AssetID, holder uuid.UUID, frozen bool) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, setFrozenSQL, holder, asset.String(), frozen, time.Now()); err != nil {
		return postgres.MapError(err, "holding", holder)
	}
	return nil
}

// ListByHolder returns all of a holder's non-zero holdings, optionally
// filtered to a single asset, ordered by asset for stable output.
func (r *Repo) ListByHolder(ctx context.Context, holder uuid.UUID, asset *domain.AssetID) ([]Holding, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	builder := psql.
		Select("holder_id", "asset", "balance::text", "frozen").
		From("holdings").
		Where(sq.Eq{"holder_id": holder}).
		Where(sq.Gt{"balance": 0}).
		OrderBy("asset")
	if asset != nil {
		builder = builder.Where(sq.Eq{"asset": asset.String()})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build holdings query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list holdings: %w", err)
	}
	defer rows.Close()

	holdings := []Holding{}
	for rows.Next() {
		var (
			h        Holding
			assetRaw string
			balRaw   string
		)
		if err := rows.Scan(&h.Holder, &assetRaw, &balRaw, &h.Frozen); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		if h.Asset, err = domain.ParseAssetID(assetRaw); err != nil {
			return nil, fmt.Errorf("holding asset: %w", err)
		}
		if h.Balance, err = domain.ParseAmount(balRaw); err != nil {
			return nil, fmt.Errorf("holding balance: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}
