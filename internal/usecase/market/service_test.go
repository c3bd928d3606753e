package market

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMarketProvider is a mock implementation of MarketProvider for testing
type MockMarketProvider struct {
	mock.Mock
}

func (m *MockMarketProvider) Fetch(ctx context.Context, now time.Time) (*domain.MarketSnapshot, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketSnapshot), args.Error(1)
}

// MockMarketSnapshotRepository is a mock implementation of MarketSnapshotRepository for testing
type MockMarketSnapshotRepository struct {
	mock.Mock
}

func (m *MockMarketSnapshotRepository) Add(ctx context.Context, snapshot *domain.MarketSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockMarketSnapshotRepository) GetLatest(ctx context.Context) (*domain.MarketSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketSnapshot), args.Error(1)
}

var fixedNow = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

func sampleSnapshot(price int64) *domain.MarketSnapshot {
	return &domain.MarketSnapshot{
		Base:         "RUB",
		PricePerGram: decimal.NewFromInt(price),
		FXRates:      map[domain.Currency]decimal.Decimal{domain.CurrencyUSD: decimal.RequireFromString("0.011")},
		FetchedAt:    fixedNow,
	}
}

func newService(provider domain.MarketProvider, cache domain.MarketSnapshotRepository) *MarketService {
	service := NewMarketService(provider, cache, logging.Discard())
	service.Now = func() time.Time { return fixedNow }
	return service
}

func TestRefresh_InstallsAndCaches(t *testing.T) {
	ctx := context.Background()
	provider := new(MockMarketProvider)
	cache := new(MockMarketSnapshotRepository)
	snapshot := sampleSnapshot(7000)

	provider.On("Fetch", ctx, fixedNow).Return(snapshot, nil)
	cache.On("Add", ctx, snapshot).Return(nil)

	service := newService(provider, cache)
	got, err := service.Refresh(ctx)

	require.NoError(t, err)
	assert.Same(t, snapshot, got)
	assert.Same(t, snapshot, service.Latest())
	provider.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestRefresh_FailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	provider := new(MockMarketProvider)
	previous := sampleSnapshot(6500)

	provider.On("Fetch", ctx, fixedNow).Return(nil, errors.New("timeout"))

	service := newService(provider, nil)
	service.Set(previous)

	got, err := service.Refresh(ctx)

	assert.Error(t, err)
	assert.Same(t, previous, got)
	assert.Same(t, previous, service.Latest())
}

func TestRefresh_CacheFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	provider := new(MockMarketProvider)
	cache := new(MockMarketSnapshotRepository)
	snapshot := sampleSnapshot(7000)

	provider.On("Fetch", ctx, fixedNow).Return(snapshot, nil)
	cache.On("Add", ctx, snapshot).Return(errors.New("read-only filesystem"))

	service := newService(provider, cache)
	_, err := service.Refresh(ctx)

	require.NoError(t, err)
	assert.Same(t, snapshot, service.Latest())
}

func TestLoadCached(t *testing.T) {
	ctx := context.Background()

	t.Run("restores snapshot", func(t *testing.T) {
		cache := new(MockMarketSnapshotRepository)
		snapshot := sampleSnapshot(7100)
		cache.On("GetLatest", ctx).Return(snapshot, nil)

		service := newService(nil, cache)
		require.NoError(t, service.LoadCached(ctx))
		assert.Same(t, snapshot, service.Latest())
	})

	t.Run("nothing cached yet", func(t *testing.T) {
		cache := new(MockMarketSnapshotRepository)
		cache.On("GetLatest", ctx).Return(nil, domain.ErrRecordNotFound)

		service := newService(nil, cache)
		require.NoError(t, service.LoadCached(ctx))
		assert.Nil(t, service.Latest())
	})

	t.Run("cache error", func(t *testing.T) {
		cache := new(MockMarketSnapshotRepository)
		cache.On("GetLatest", ctx).Return(nil, errors.New("corrupt"))

		service := newService(nil, cache)
		assert.Error(t, service.LoadCached(ctx))
	})

	t.Run("no cache configured", func(t *testing.T) {
		service := newService(nil, nil)
		assert.NoError(t, service.LoadCached(ctx))
	})
}
