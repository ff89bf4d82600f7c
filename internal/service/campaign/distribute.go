package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// DistributionResult reports what one DistributeAsset call settled.
type DistributionResult struct {
	Asset       domain.AssetID
	Distributed domain.Amount // balance settled by this call (zero = no-op)
	Payouts     int
}

// Distribute settles the campaign's current balance of one asset: each
// active investor receives their floor pro-rata share net of the owner fee,
// in ledger order, and the remainder (fee plus rounding dust) goes to the
// owner in one final transfer. Owner-only, campaign must be closed.
//
// The call may be repeated per asset as profit arrives; with no new balance
// it is a no-op. A refused transfer aborts the whole call with
// ErrTransferFailed and rolls back; a retry re-attempts from the top
// against the then-current balance.
func (s *Service) Distribute(ctx context.Context, input DistributeInput) (*DistributionResult, error) {
	caller, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result DistributionResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaigns.GetForUpdate(txCtx, input.CampaignID)
		if err != nil {
			return err
		}

		if err := c.AuthorizeDistribution(caller); err != nil {
			return err
		}

		balance, err := s.assets.BalanceOf(txCtx, input.Asset, c.ID)
		if err != nil {
			return fmt.Errorf("asset balance: %w", err)
		}

		plan := domain.PlanDistribution(
			c.Ledger.EnumerateActive(c.Ledger.Len()),
			c.TotalRaised(),
			c.Config.FeePercent,
			c.Owner,
			balance,
		)

		for _, p := range plan {
			if err := s.transferOut(txCtx, input.Asset, c, p.To, p.Amount); err != nil {
				return fmt.Errorf("distribute to %s: %w", p.To, err)
			}
		}

		result = DistributionResult{Asset: input.Asset, Distributed: balance, Payouts: len(plan)}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "asset distributed",
		slog.String("campaign_id", input.CampaignID.String()),
		slog.String("asset", input.Asset.String()),
		slog.String("balance", result.Distributed.String()),
		slog.Int("payouts", result.Payouts),
	)

	return &result, nil
}
