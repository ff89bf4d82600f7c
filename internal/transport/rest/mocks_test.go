package rest

import (
	"context"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/adapter/postgres/holding"
	"github.com/crowdpool/crowdpool-backend/internal/domain"
	"github.com/crowdpool/crowdpool-backend/internal/service/account"
	"github.com/crowdpool/crowdpool-backend/internal/service/campaign"
)

type accountServiceMock struct {
	RegisterFunc func(ctx context.Context, input account.RegisterInput) (*account.AuthResult, error)
	LoginFunc    func(ctx context.Context, input account.LoginInput) (*account.AuthResult, error)
	GetFunc      func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
}

func (m *accountServiceMock) Register(ctx context.Context, input account.RegisterInput) (*account.AuthResult, error) {
	return m.RegisterFunc(ctx, input)
}

func (m *accountServiceMock) Login(ctx context.Context, input account.LoginInput) (*account.AuthResult, error) {
	return m.LoginFunc(ctx, input)
}

func (m *accountServiceMock) Get(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	return m.GetFunc(ctx, id)
}

type campaignServiceMock struct {
	CreateFunc        func(ctx context.Context, input campaign.CreateCampaignInput) (*domain.Campaign, error)
	GetStatusFunc     func(ctx context.Context, campaignID uuid.UUID) (*campaign.Status, error)
	ListInvestorsFunc func(ctx context.Context, campaignID uuid.UUID, limit int) ([]campaign.Investor, error)
	ContributeFunc    func(ctx context.Context, input campaign.ContributeInput) (*domain.Campaign, error)
	RefundFunc        func(ctx context.Context, campaignID uuid.UUID) (domain.Amount, error)
	CloseFunc         func(ctx context.Context, input campaign.CloseInput) (*campaign.CloseResult, error)
	DistributeFunc    func(ctx context.Context, input campaign.DistributeInput) (*campaign.DistributionResult, error)
	DepositFunc       func(ctx context.Context, input campaign.DepositInput) error
}

func (m *campaignServiceMock) Create(ctx context.Context, input campaign.CreateCampaignInput) (*domain.Campaign, error) {
	return m.CreateFunc(ctx, input)
}

func (m *campaignServiceMock) GetStatus(ctx context.Context, campaignID uuid.UUID) (*campaign.Status, error) {
	return m.GetStatusFunc(ctx, campaignID)
}

func (m *campaignServiceMock) ListInvestors(ctx context.Context, campaignID uuid.UUID, limit int) ([]campaign.Investor, error) {
	return m.ListInvestorsFunc(ctx, campaignID, limit)
}

func (m *campaignServiceMock) Contribute(ctx context.Context, input campaign.ContributeInput) (*domain.Campaign, error) {
	return m.ContributeFunc(ctx, input)
}

func (m *campaignServiceMock) Refund(ctx context.Context, campaignID uuid.UUID) (domain.Amount, error) {
	return m.RefundFunc(ctx, campaignID)
}

func (m *campaignServiceMock) Close(ctx context.Context, input campaign.CloseInput) (*campaign.CloseResult, error) {
	return m.CloseFunc(ctx, input)
}

func (m *campaignServiceMock) Distribute(ctx context.Context, input campaign.DistributeInput) (*campaign.DistributionResult, error) {
	return m.DistributeFunc(ctx, input)
}

func (m *campaignServiceMock) Deposit(ctx context.Context, input campaign.DepositInput) error {
	return m.DepositFunc(ctx, input)
}

type holdingListerMock struct {
	ListByHolderFunc func(ctx context.Context, holder uuid.UUID, asset *domain.AssetID) ([]holding.Holding, error)
}

func (m *holdingListerMock) ListByHolder(ctx context.Context, holder uuid.UUID, asset *domain.AssetID) ([]holding.Holding, error) {
	return m.ListByHolderFunc(ctx, holder, asset)
}
