package campaign

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/config"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/pkg/ctxutil"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testConfig() config.CampaignConfig {
	return config.CampaignConfig{
		MaxInvestors:     1000,
		ListLimitDefault: 50,
		ListLimitMax:     200,
	}
}

func newTestService(repo *campaignRepoMock, assets *assetBookMock) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(log, repo, assets, txManagerMock{}, testConfig())
	s.now = func() time.Time { return testNow }
	return s
}

// newOpenCampaign builds an open campaign closing one hour after testNow.
func newOpenCampaign(t *testing.T, owner uuid.UUID, softCap, hardCap int64) *domain.Campaign {
	t.Helper()
	c, err := domain.NewCampaign(owner, domain.CampaignConfig{
		Description: "community hardware batch",
		FeePercent:  10,
		SoftCap:     domain.NewAmount(softCap),
		HardCap:     domain.NewAmount(hardCap),
		ClosingTime: testNow.Add(time.Hour),
	}, testNow)
	if err != nil {
		t.Fatalf("new campaign: %v", err)
	}
	return c
}

// repoFor wires a mock that always serves and saves the given campaign.
func repoFor(c *domain.Campaign) *campaignRepoMock {
	return &campaignRepoMock{
		GetFunc: func(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
			if c != nil && id == c.ID {
				return c, nil
			}
			return nil, domain.ErrNotFound
		},
		GetForUpdateFunc: func(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
			if c != nil && id == c.ID {
				return c, nil
			}
			return nil, domain.ErrNotFound
		},
	}
}

func authCtx(id uuid.UUID) context.Context {
	return ctxutil.WithAccountID(context.Background(), id)
}
