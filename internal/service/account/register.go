package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// Register creates a new account with email + password authentication.
// Returns ErrAlreadyExists if the email is already taken.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	// Normalize input before validation.
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)

	if err := input.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cfg.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("account.Register hash password: %w", err)
	}

	now := time.Now()
	acc := &domain.Account{
		ID:           uuid.New(),
		Email:        input.Email,
		DisplayName:  input.DisplayName,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	// Email uniqueness is enforced by a DB constraint.
	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, fmt.Errorf("account.Register: %w", domain.ErrAlreadyExists)
		}
		return nil, fmt.Errorf("account.Register: %w", err)
	}

	token, err := s.jwt.GenerateAccessToken(acc.ID)
	if err != nil {
		return nil, fmt.Errorf("account.Register issue token: %w", err)
	}

	s.log.InfoContext(ctx, "account registered",
		slog.String("account_id", acc.ID.String()))

	return &AuthResult{AccessToken: token, Account: acc}, nil
}
