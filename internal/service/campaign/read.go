package campaign

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

// Status is the aggregate campaign read.
type Status struct {
	ID             uuid.UUID
	Description    string
	Owner          uuid.UUID
	FeePercent     int
	SoftCap        domain.Amount
	HardCap        domain.Amount
	ClosingTime    time.Time
	TotalRaised    domain.Amount
	Close          domain.CloseKind
	IsClosed       bool
	InvestorCount  int
	MyContribution domain.Amount
}

// GetStatus returns the aggregate status of a campaign. MyContribution is
// the caller's own recorded stake; anonymous callers read zero. Reads never
// mutate state.
func (s *Service) GetStatus(ctx context.Context, campaignID uuid.UUID) (*Status, error) {
	if campaignID == uuid.Nil {
		return nil, domain.NewValidationError("campaign_id", "required")
	}

	c, err := s.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	var mine domain.Amount
	if caller, ok := ctxutil.AccountIDFromCtx(ctx); ok {
		mine = c.Ledger.AmountOf(caller)
	}

	return &Status{
		ID:             c.ID,
		Description:    c.Config.Description,
		Owner:          c.Owner,
		FeePercent:     c.Config.FeePercent,
		SoftCap:        c.Config.SoftCap,
		HardCap:        c.Config.HardCap,
		ClosingTime:    c.Config.ClosingTime,
		TotalRaised:    c.TotalRaised(),
		Close:          c.Close,
		IsClosed:       !c.IsOpen(),
		InvestorCount:  c.Ledger.ActiveCount(),
		MyContribution: mine,
	}, nil
}

// Investor is one row of the bounded investor enumeration.
type Investor struct {
	AccountID uuid.UUID
	Amount    domain.Amount
}

// ListInvestors returns up to limit active (investor, amount) pairs in
// contribution order. Limit is clamped to the configured bounds; zero means
// the default page size.
func (s *Service) ListInvestors(ctx context.Context, campaignID uuid.UUID, limit int) ([]Investor, error) {
	if campaignID == uuid.Nil {
		return nil, domain.NewValidationError("campaign_id", "required")
	}

	if limit <= 0 {
		limit = s.cfg.ListLimitDefault
	}
	if limit > s.cfg.ListLimitMax {
		limit = s.cfg.ListLimitMax
	}

	c, err := s.campaigns.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	entries := c.Ledger.EnumerateActive(limit)
	investors := make([]Investor, len(entries))
	for i, e := range entries {
		investors[i] = Investor{AccountID: e.Investor, Amount: e.Amount}
	}
	return investors, nil
}
