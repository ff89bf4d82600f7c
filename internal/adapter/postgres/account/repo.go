// Package account implements the account repository using PostgreSQL.
package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/crowdpool/crowdpool-backend/internal/adapter/postgres"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// Repo provides account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new account repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const accountColumns = `id, email, display_name, password_hash, created_at, updated_at`

const insertSQL = `
INSERT INTO accounts (` + accountColumns + `)
VALUES ($1, $2, $3, $4, $5, $6)`

const getByIDSQL = `
SELECT ` + accountColumns + `
FROM accounts
WHERE id = $1`

const getByEmailSQL = `
SELECT ` + accountColumns + `
FROM accounts
WHERE email = $1`

// Create inserts a new account.
// Returns domain.ErrAlreadyExists if the email is taken.
func (r *Repo) Create(ctx context.Context, a *domain.Account) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx, insertSQL,
		a.ID, a.Email, a.DisplayName, a.PasswordHash, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "account", a.Email)
	}
	return nil
}

// GetByID returns an account by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAccount(q.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "account", id)
	}
	return a, nil
}

// GetByEmail returns an account by email.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAccount(q.QueryRow(ctx, getByEmailSQL, email))
	if err != nil {
		return nil, postgres.MapError(err, "account", email)
	}
	return a, nil
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.Email, &a.DisplayName, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
