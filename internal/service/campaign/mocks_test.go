package campaign

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/crowdpool/crowdpool-backend/internal/domain"
)

// campaignRepoMock is a func-field mock of campaignRepo.
type campaignRepoMock struct {
	CreateFunc       func(ctx context.Context, c *domain.Campaign) error
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	GetForUpdateFunc func(ctx context.Context, id uuid.UUID) (*domain.Campaign, error)
	SaveFunc         func(ctx context.Context, c *domain.Campaign) error

	mu        sync.Mutex
	saveCalls int
}

func (m *campaignRepoMock) Create(ctx context.Context, c *domain.Campaign) error {
	return m.CreateFunc(ctx, c)
}

func (m *campaignRepoMock) Get(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return m.GetFunc(ctx, id)
}

func (m *campaignRepoMock) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Campaign, error) {
	return m.GetForUpdateFunc(ctx, id)
}

func (m *campaignRepoMock) Save(ctx context.Context, c *domain.Campaign) error {
	m.mu.Lock()
	m.saveCalls++
	m.mu.Unlock()
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, c)
	}
	return nil
}

func (m *campaignRepoMock) SaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

// transferCall records one assetBook.Transfer invocation.
type transferCall struct {
	Asset  domain.AssetID
	From   uuid.UUID
	To     uuid.UUID
	Amount domain.Amount
}

// assetBookMock is a func-field mock of assetBook. When TransferFunc is nil
// every transfer is accepted and recorded.
type assetBookMock struct {
	BalanceOfFunc func(ctx context.Context, asset domain.AssetID, holder uuid.UUID) (domain.Amount, error)
	TransferFunc  func(ctx context.Context, asset domain.AssetID, from, to uuid.UUID, amount domain.Amount) (bool, error)

	mu        sync.Mutex
	transfers []transferCall
}

func (m *assetBookMock) BalanceOf(ctx context.Context, asset domain.AssetID, holder uuid.UUID) (domain.Amount, error) {
	if m.BalanceOfFunc != nil {
		return m.BalanceOfFunc(ctx, asset, holder)
	}
	return domain.Amount{}, nil
}

func (m *assetBookMock) Transfer(ctx context.Context, asset domain.AssetID, from, to uuid.UUID, amount domain.Amount) (bool, error) {
	m.mu.Lock()
	m.transfers = append(m.transfers, transferCall{Asset: asset, From: from, To: to, Amount: amount})
	m.mu.Unlock()
	if m.TransferFunc != nil {
		return m.TransferFunc(ctx, asset, from, to, amount)
	}
	return true, nil
}

func (m *assetBookMock) TransferCalls() []transferCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]transferCall, len(m.transfers))
	copy(out, m.transfers)
	return out
}

// txManagerMock runs the callback with the same context, like a transaction
// that always commits unless fn fails.
type txManagerMock struct{}

func (txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
