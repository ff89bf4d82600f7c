package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// Contribute records a contribution from the authenticated caller and moves
// the native value into campaign custody. Valid only while the campaign is
// open, before its closing time and within the hard cap; everything commits
// in one transaction.
func (s *Service) Contribute(ctx context.Context, input ContributeInput) (*domain.Campaign, error) {
	investor, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var c *domain.Campaign
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		c, err = s.campaigns.GetForUpdate(txCtx, input.CampaignID)
		if err != nil {
			return err
		}

		if err := c.Contribute(investor, input.Amount, s.now(), s.cfg.MaxInvestors); err != nil {
			return err
		}

		// Ledger state is written before the custody credit so the
		// transfer (and anything it triggers) observes updated weights.
		if err := s.campaigns.Save(txCtx, c); err != nil {
			return fmt.Errorf("save campaign: %w", err)
		}

		accepted, err := s.assets.Transfer(txCtx, domain.NativeAsset(), investor, c.ID, input.Amount)
		if err != nil {
			return fmt.Errorf("move contribution into custody: %w", err)
		}
		if !accepted {
			return domain.ErrTransferFailed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "contribution recorded",
		slog.String("campaign_id", c.ID.String()),
		slog.String("investor_id", investor.String()),
		slog.String("amount", input.Amount.String()),
		slog.String("total_raised", c.TotalRaised().String()),
	)

	return c, nil
}
