package campaign

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

func TestService_Contribute(t *testing.T) {
	owner := uuid.New()
	investor := uuid.New()

	t.Run("success", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		repo := repoFor(c)
		assets := &assetBookMock{}
		svc := newTestService(repo, assets)

		got, err := svc.Contribute(authCtx(investor), ContributeInput{
			CampaignID: c.ID,
			Amount:     domain.NewAmount(40),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.TotalRaised().Cmp(domain.NewAmount(40)) != 0 {
			t.Errorf("total raised = %s, want 40", got.TotalRaised())
		}
		if repo.SaveCalls() != 1 {
			t.Errorf("save calls = %d, want 1", repo.SaveCalls())
		}

		calls := assets.TransferCalls()
		if len(calls) != 1 {
			t.Fatalf("transfer calls = %d, want 1", len(calls))
		}
		if calls[0].Asset != domain.NativeAsset() {
			t.Errorf("asset = %s, want native", calls[0].Asset)
		}
		if calls[0].From != investor || calls[0].To != c.ID {
			t.Errorf("transfer %s -> %s, want %s -> %s", calls[0].From, calls[0].To, investor, c.ID)
		}
	})

	t.Run("repeat contribution accumulates", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		svc := newTestService(repoFor(c), &assetBookMock{})

		for _, v := range []int64{30, 20} {
			if _, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(v)}); err != nil {
				t.Fatalf("contribute %d: %v", v, err)
			}
		}
		if got := c.Ledger.AmountOf(investor); got.Cmp(domain.NewAmount(50)) != 0 {
			t.Errorf("stake = %s, want 50", got)
		}
		if c.Ledger.ActiveCount() != 1 {
			t.Errorf("active count = %d, want 1", c.Ledger.ActiveCount())
		}
	})

	t.Run("unauthenticated", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		svc := newTestService(repoFor(c), &assetBookMock{})
		_, err := svc.Contribute(context.Background(), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(1)})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Errorf("got %v, want ErrUnauthorized", err)
		}
	})

	t.Run("zero amount", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		svc := newTestService(repoFor(c), &assetBookMock{})
		_, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("got %v, want ErrValidation", err)
		}
	})

	t.Run("unknown campaign", func(t *testing.T) {
		svc := newTestService(repoFor(nil), &assetBookMock{})
		_, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: uuid.New(), Amount: domain.NewAmount(1)})
		if !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("got %v, want ErrNotFound", err)
		}
	})

	t.Run("past closing time", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		repo := repoFor(c)
		assets := &assetBookMock{}
		svc := newTestService(repo, assets)
		svc.now = func() time.Time { return c.Config.ClosingTime }

		_, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(1)})
		if !errors.Is(err, domain.ErrExpired) {
			t.Errorf("got %v, want ErrExpired", err)
		}
		if repo.SaveCalls() != 0 {
			t.Errorf("save calls = %d, want 0", repo.SaveCalls())
		}
		if len(assets.TransferCalls()) != 0 {
			t.Error("no transfer expected on rejection")
		}
	})

	t.Run("hard cap exceeded", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		c.Ledger.Upsert(uuid.New(), domain.NewAmount(480))
		svc := newTestService(repoFor(c), &assetBookMock{})

		_, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(21)})
		if !errors.Is(err, domain.ErrCapExceeded) {
			t.Errorf("got %v, want ErrCapExceeded", err)
		}

		// Exactly filling the cap is fine.
		if _, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(20)}); err != nil {
			t.Errorf("contribution up to hard cap: %v", err)
		}
	})

	t.Run("closed campaign", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		c.Close = domain.CloseKindRefunded
		svc := newTestService(repoFor(c), &assetBookMock{})

		_, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(1)})
		if !errors.Is(err, domain.ErrNotOpen) {
			t.Errorf("got %v, want ErrNotOpen", err)
		}
	})

	t.Run("investor limit", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		c.Ledger.Upsert(uuid.New(), domain.NewAmount(1))
		c.Ledger.Upsert(uuid.New(), domain.NewAmount(1))

		svc := newTestService(repoFor(c), &assetBookMock{})
		svc.cfg.MaxInvestors = 2

		_, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(1)})
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("got %v, want ErrValidation", err)
		}
	})

	t.Run("refused transfer aborts", func(t *testing.T) {
		c := newOpenCampaign(t, owner, 100, 500)
		assets := &assetBookMock{
			TransferFunc: func(ctx context.Context, asset domain.AssetID, from, to uuid.UUID, amount domain.Amount) (bool, error) {
				return false, nil
			},
		}
		svc := newTestService(repoFor(c), assets)

		_, err := svc.Contribute(authCtx(investor), ContributeInput{CampaignID: c.ID, Amount: domain.NewAmount(10)})
		if !errors.Is(err, domain.ErrTransferFailed) {
			t.Errorf("got %v, want ErrTransferFailed", err)
		}
	})
}
