package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// Deposit moves profit assets from the caller into campaign custody, to be
// settled by a later Distribute call. Deposits are not contributions: they
// never touch the ledger and are exempt from cap and time checks.
//
// Native deposits require a closed campaign; while open, the only native
// inflow is Contribute. Token deposits are accepted in any state, the way
// token transfers could land in custody before close.
func (s *Service) Deposit(ctx context.Context, input DepositInput) error {
	depositor, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return err
	}

	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaigns.Get(txCtx, input.CampaignID)
		if err != nil {
			return err
		}

		if input.Asset.Kind == domain.AssetKindNative && c.IsOpen() {
			return domain.NewValidationError("asset", "native deposits require a closed campaign; contribute instead")
		}

		accepted, err := s.assets.Transfer(txCtx, input.Asset, depositor, c.ID, input.Amount)
		if err != nil {
			return fmt.Errorf("move deposit into custody: %w", err)
		}
		if !accepted {
			return domain.ErrTransferFailed
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "profit deposited",
		slog.String("campaign_id", input.CampaignID.String()),
		slog.String("depositor_id", depositor.String()),
		slog.String("asset", input.Asset.String()),
		slog.String("amount", input.Amount.String()),
	)

	return nil
}
