package campaign

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// CloseResult reports the outcome of a close operation.
type CloseResult struct {
	Close     domain.CloseKind
	Withdrawn domain.Amount // withdraw mode: custody moved to the owner
	Refunds   int           // refund_all mode: number of payouts issued
}

// Close finalizes an open campaign. Owner-only.
//
// Withdraw mode requires the soft cap and moves the entire native custody
// balance to the owner, keeping the ledger as the distribution weight table.
// Refund-all mode returns every active stake in creation order and zeroes
// the ledger. Both transitions are terminal.
func (s *Service) Close(ctx context.Context, input CloseInput) (*CloseResult, error) {
	caller, ok := ctxutil.AccountIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	var result CloseResult
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		c, err := s.campaigns.GetForUpdate(txCtx, input.CampaignID)
		if err != nil {
			return err
		}

		switch input.Mode {
		case CloseModeWithdraw:
			if err := c.CloseAndWithdraw(caller); err != nil {
				return err
			}
			if err := s.campaigns.Save(txCtx, c); err != nil {
				return fmt.Errorf("save campaign: %w", err)
			}

			// No fee on principal: the owner receives the custody
			// balance in full.
			balance, err := s.assets.BalanceOf(txCtx, domain.NativeAsset(), c.ID)
			if err != nil {
				return fmt.Errorf("custody balance: %w", err)
			}
			if !balance.IsZero() {
				if err := s.transferOut(txCtx, domain.NativeAsset(), c, c.Owner, balance); err != nil {
					return fmt.Errorf("withdraw custody: %w", err)
				}
			}
			result = CloseResult{Close: c.Close, Withdrawn: balance}
			return nil

		case CloseModeRefundAll:
			payouts, err := c.CloseAndRefundAll(caller)
			if err != nil {
				return err
			}
			if err := s.campaigns.Save(txCtx, c); err != nil {
				return fmt.Errorf("save campaign: %w", err)
			}
			for _, p := range payouts {
				if err := s.transferOut(txCtx, domain.NativeAsset(), c, p.To, p.Amount); err != nil {
					return fmt.Errorf("refund %s: %w", p.To, err)
				}
			}
			result = CloseResult{Close: c.Close, Refunds: len(payouts)}
			return nil

		default:
			return domain.NewValidationError("mode", "unknown close mode")
		}
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "campaign closed",
		slog.String("campaign_id", input.CampaignID.String()),
		slog.String("mode", string(input.Mode)),
		slog.String("state", result.Close.String()),
	)

	return &result, nil
}
