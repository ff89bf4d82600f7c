// Package account implements registration and password login for the
// accounts that own campaigns and hold asset balances.
package account

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/config"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// accountRepo defines the account repository interface needed by this service.
type accountRepo interface {
	Create(ctx context.Context, a *domain.Account) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// jwtManager defines the token management interface needed by this service.
type jwtManager interface {
	GenerateAccessToken(accountID uuid.UUID) (string, error)
}

// Service implements account operations.
type Service struct {
	log      *slog.Logger
	accounts accountRepo
	jwt      jwtManager
	cfg      config.AuthConfig
}

// NewService creates a new account service instance.
func NewService(logger *slog.Logger, accounts accountRepo, jwt jwtManager, cfg config.AuthConfig) *Service {
	return &Service{
		log:      logger.With("service", "account"),
		accounts: accounts,
		jwt:      jwt,
		cfg:      cfg,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	Account     *domain.Account
}

// Get returns the account by ID.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if id == uuid.Nil {
		return nil, domain.NewValidationError("account_id", "required")
	}
	return s.accounts.GetByID(ctx, id)
}
