// Package campaign implements the pooled-investment campaign use cases:
// creation, contributions, refunds, the two close paths, profit deposits
// and pro-rata distribution of profit assets.
//
// Operations follow a fixed shape: load and lock the campaign inside a
// transaction, apply the pure domain transition, persist, and execute the
// resulting asset transfers through the holdings book. The book joins the
// operation's transaction, so every operation commits atomically: a failed
// transfer rolls the whole call back, and a retried distribution always
// starts from the then-current balance.
package campaign

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/config"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// campaignRepo is the campaign persistence interface needed by this service.
// GetForUpdate must take a row lock so mutating operations on one campaign
// serialize; it is only valid inside RunInTx.
type campaignRepo interface {
	Create(ctx context.Context, c *domain.Campaign) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	Save(ctx context.Context, c *domain.Campaign) error
}

// assetBook moves asset balances between holders. Transfer reports
// accepted=false when the receiving side refuses the asset (the fungible
// token "boolean success" path); infrastructure failures are errors.
type assetBook interface {
	BalanceOf(ctx context.Context, asset domain.AssetID, holder uuid.UUID) (domain.Amount, error)
	Transfer(ctx context.Context, asset domain.AssetID, from, to uuid.UUID, amount domain.Amount) (bool, error)
}

// txManager defines the transaction manager interface needed by this service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides campaign operations. The campaign's own id doubles as its
// custody account in the holdings book.
type Service struct {
	campaigns campaignRepo
	assets    assetBook
	tx        txManager
	cfg       config.CampaignConfig
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a new campaign service.
func NewService(
	log *slog.Logger,
	campaigns campaignRepo,
	assets assetBook,
	tx txManager,
	cfg config.CampaignConfig,
) *Service {
	return &Service{
		campaigns: campaigns,
		assets:    assets,
		tx:        tx,
		cfg:       cfg,
		log:       log.With("service", "campaign"),
		now:       time.Now,
	}
}

// transferOut moves amount from campaign custody to an external holder and
// maps a refusal to ErrTransferFailed.
func (s *Service) transferOut(ctx context.Context, asset domain.AssetID, c *domain.Campaign, to uuid.UUID, amount domain.Amount) error {
	accepted, err := s.assets.Transfer(ctx, asset, c.ID, to, amount)
	if err != nil {
		return err
	}
	if !accepted {
		return domain.ErrTransferFailed
	}
	return nil
}
