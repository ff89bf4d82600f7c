package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// Refund returns the caller's full recorded contribution from campaign
// custody. Available only while the campaign is open and the soft cap has
// not been reached; once it is, the raise is committed and refunds are
// permanently disabled.
func (s *Service) Refund(ctx context.Context, campaignID uuid.UUID) (domain.Amount, error) {
	investor, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return domain.Amount{}, domain.ErrUnauthorized
	}
	if campaignID == uuid.Nil {
		return domain.Amount{}, domain.NewValidationError("campaign_id", "required")
	}

	var refunded domain.Amount
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaigns.GetForUpdate(txCtx, campaignID)
		if err != nil {
			return err
		}

		payout, err := c.Refund(investor)
		if err != nil {
			return err
		}

		if err := s.campaigns.Save(txCtx, c); err != nil {
			return fmt.Errorf("save campaign: %w", err)
		}

		if err := s.transferOut(txCtx, domain.NativeAsset(), c, payout.To, payout.Amount); err != nil {
			return fmt.Errorf("refund payout: %w", err)
		}

		refunded = payout.Amount
		return nil
	})
	if err != nil {
		return domain.Amount{}, err
	}

	s.log.InfoContext(ctx, "contribution refunded",
		slog.String("campaign_id", campaignID.String()),
		slog.String("investor_id", investor.String()),
		slog.String("amount", refunded.String()),
	)

	return refunded, nil
}
