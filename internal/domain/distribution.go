package domain

import (
	"math/big"

	"github.com/google/uuid"
)

// PlanDistribution computes the settlement plan for one asset balance.
//
// Each active ledger entry with weight w receives
//
//	share = floor(balance * w * (100 - feePercent) / (denominator * 100))
//
// in creation order, and the entire remaining balance (the owner's fee plus
// all floor-rounding dust) goes to the owner as one final payout. The plan
// conserves exactly: sum of payout amounts == balance, for every call.
//
// A zero denominator (no active investors, e.g. after a full refund) skips
// the per-investor loop and routes the whole balance to the owner. Zero
// payouts are omitted, so a zero balance yields an empty plan.
//
// The plan only reads the ledger snapshot; executing the transfers is the
// caller's job.
func PlanDistribution(entries []LedgerEntry, denominator Amount, feePercent int, owner uuid.UUID, balance Amount) []Payout {
	if balance.IsZero() {
		return nil
	}

	payouts := make([]Payout, 0, len(entries)+1)
	remaining := balance

	if !denominator.IsZero() {
		b := balance.BigInt()
		netPct := big.NewInt(int64(100 - feePercent))
		div := new(big.Int).Mul(denominator.BigInt(), big.NewInt(100))

		for _, e := range entries {
			if e.Amount.IsZero() {
				continue
			}
			share := new(big.Int).Mul(b, e.Amount.BigInt())
			share.Mul(share, netPct)
			share.Quo(share, div)

			amt, err := AmountFromBig(share)
			if err != nil || amt.IsZero() {
				continue
			}
			payouts = append(payouts, Payout{To: e.Investor, Amount: amt})
			remaining, _ = remaining.Sub(amt)
		}
	}

	if !remaining.IsZero() {
		payouts = append(payouts, Payout{To: owner, Amount: remaining})
	}
	return payouts
}
