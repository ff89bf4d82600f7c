package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CampaignConfig is the immutable configuration fixed at creation.
type CampaignConfig struct {
	Description string
	FeePercent  int // owner's cut of distributed profit, 0–100
	SoftCap     Amount
	HardCap     Amount
	ClosingTime time.Time
}

// Validate checks the config at creation time. ClosingTime must be in the
// future at creation; it is not re-validated afterwards.
func (c CampaignConfig) Validate(now time.Time) error {
	var errs []FieldError

	if strings.TrimSpace(c.Description) == "" {
		errs = append(errs, FieldError{Field: "description", Message: "required"})
	}
	if len(c.Description) > 500 {
		errs = append(errs, FieldError{Field: "description", Message: "max 500 characters"})
	}
	if c.FeePercent < 0 || c.FeePercent > 100 {
		errs = append(errs, FieldError{Field: "fee_percent", Message: "must be between 0 and 100"})
	}
	if c.HardCap.IsZero() {
		errs = append(errs, FieldError{Field: "hard_cap", Message: "must be positive"})
	}
	if c.SoftCap.Cmp(c.HardCap) > 0 {
		errs = append(errs, FieldError{Field: "soft_cap", Message: "must not exceed hard cap"})
	}
	if !c.ClosingTime.After(now) {
		errs = append(errs, FieldError{Field: "closing_time", Message: "must be in the future"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Campaign is the pooled-investment state machine. All transitions are pure
// with respect to external systems: they validate, mutate the in-memory
// state, and return the payouts the caller must execute. Persistence and
// asset movement are the service's job.
type Campaign struct {
	ID        uuid.UUID
	Owner     uuid.UUID
	Config    CampaignConfig
	Close     CloseKind
	Ledger    *Ledger
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCampaign creates an Open campaign owned by owner.
func NewCampaign(owner uuid.UUID, cfg CampaignConfig, now time.Time) (*Campaign, error) {
	if err := cfg.Validate(now); err != nil {
		return nil, err
	}
	return &Campaign{
		ID:        uuid.New(),
		Owner:     owner,
		Config:    cfg,
		Close:     CloseKindOpen,
		Ledger:    NewLedger(),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Payout is a transfer instruction produced by a state transition.
type Payout struct {
	To     uuid.UUID
	Amount Amount
}

// IsOpen reports whether the campaign still accepts contributions.
func (c *Campaign) IsOpen() bool { return c.Close == CloseKindOpen }

// TotalRaised returns the authoritative cap-check denominator.
func (c *Campaign) TotalRaised() Amount { return c.Ledger.Total() }

// SoftCapReached reports whether the raise is economically committed.
func (c *Campaign) SoftCapReached() bool {
	return c.TotalRaised().Cmp(c.Config.SoftCap) >= 0
}

// Contribute records a contribution. maxInvestors bounds ledger growth:
// a contribution that would create an entry beyond the bound is rejected,
// which in turn bounds refund-all and distribution loop work.
func (c *Campaign) Contribute(investor uuid.UUID, amount Amount, now time.Time, maxInvestors int) error {
	if !c.IsOpen() {
		return ErrNotOpen
	}
	if !now.Before(c.Config.ClosingTime) {
		return ErrExpired
	}
	if amount.IsZero() {
		return NewValidationError("amount", "must be positive")
	}
	if c.TotalRaised().Add(amount).Cmp(c.Config.HardCap) > 0 {
		return ErrCapExceeded
	}
	if maxInvestors > 0 && c.Ledger.AmountOf(investor).IsZero() && c.Ledger.ActiveCount() >= maxInvestors {
		return NewValidationError("investor", "campaign investor limit reached")
	}
	c.Ledger.Upsert(investor, amount)
	return nil
}

// Refund returns the investor's full stake while the soft cap is unmet.
// Once the soft cap is reached the raise is committed and refunds are
// permanently disabled for this campaign.
func (c *Campaign) Refund(investor uuid.UUID) (Payout, error) {
	if !c.IsOpen() {
		return Payout{}, ErrNotOpen
	}
	if c.SoftCapReached() {
		return Payout{}, ErrSoftCapReached
	}
	held, err := c.Ledger.Clear(investor)
	if err != nil {
		return Payout{}, err
	}
	return Payout{To: investor, Amount: held}, nil
}

// CloseAndWithdraw moves the campaign to ClosedWithdrawn. The caller must
// then transfer the full custody balance to the owner. The ledger and total
// are kept: they are the weight table for later distributions.
func (c *Campaign) CloseAndWithdraw(caller uuid.UUID) error {
	if caller != c.Owner {
		return ErrUnauthorized
	}
	if !c.IsOpen() {
		return ErrNotOpen
	}
	if !c.SoftCapReached() {
		return ErrSoftCapNotReached
	}
	c.Close = CloseKindWithdrawn
	return nil
}

// CloseAndRefundAll moves the campaign to ClosedRefunded, zeroing every
// active entry and returning the payouts in creation order. TotalRaised
// becomes zero, so any later distribution degenerates to "all to owner".
func (c *Campaign) CloseAndRefundAll(caller uuid.UUID) ([]Payout, error) {
	if caller != c.Owner {
		return nil, ErrUnauthorized
	}
	if !c.IsOpen() {
		return nil, ErrNotOpen
	}
	active := c.Ledger.EnumerateActive(c.Ledger.Len())
	payouts := make([]Payout, 0, len(active))
	for _, e := range active {
		held, err := c.Ledger.Clear(e.Investor)
		if err != nil {
			return nil, err
		}
		payouts = append(payouts, Payout{To: e.Investor, Amount: held})
	}
	c.Close = CloseKindRefunded
	return payouts, nil
}

// AuthorizeDistribution validates a DistributeAsset call. Distribution is
// owner-only and requires a closed campaign; after a refund-all it is
// permitted but degenerates (zero weights route everything to the owner).
func (c *Campaign) AuthorizeDistribution(caller uuid.UUID) error {
	if caller != c.Owner {
		return ErrUnauthorized
	}
	if c.IsOpen() {
		return ErrNotOpen
	}
	return nil
}
