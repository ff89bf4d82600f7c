package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// Create creates a new campaign owned by the authenticated caller.
func (s *Service) Create(ctx context.Context, input CreateCampaignInput) (*domain.Campaign, error) {
	owner, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	c, err := domain.NewCampaign(owner, domain.CampaignConfig{
		Description: input.Description,
		FeePercent:  input.FeePercent,
		SoftCap:     input.SoftCap,
		HardCap:     input.HardCap,
		ClosingTime: input.ClosingTime,
	}, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.campaigns.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	s.log.InfoContext(ctx, "campaign created",
		slog.String("campaign_id", c.ID.String()),
		slog.String("owner_id", owner.String()),
		slog.String("hard_cap", c.Config.HardCap.String()),
	)

	return c, nil
}
