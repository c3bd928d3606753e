package investment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMarketSource is a mock implementation of dashboard.MarketSource for testing
type MockMarketSource struct {
	mock.Mock
}

func (m *MockMarketSource) Latest() *domain.MarketSnapshot {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*domain.MarketSnapshot)
}

func newService(grams int64, market dashboard.MarketSource) *InvestmentService {
	store := state.NewStore(domain.State{GoldGrams: domain.AmountFromInt(grams), Currency: domain.CurrencyUSD})
	return NewInvestmentService(store, dashboard.NewDashboardService(store, market))
}

func TestGoldGrams(t *testing.T) {
	tests := []struct {
		name    string
		initial int64
		op      func(s *InvestmentService) (decimal.Decimal, error)
		want    string
	}{
		{
			name:    "add",
			initial: 5,
			op:      func(s *InvestmentService) (decimal.Decimal, error) { return s.AddGrams(context.Background(), "2.5") },
			want:    "7.5",
		},
		{
			name:    "remove within holding",
			initial: 5,
			op:      func(s *InvestmentService) (decimal.Decimal, error) { return s.RemoveGrams(context.Background(), "3") },
			want:    "2",
		},
		{
			name:    "remove below zero clamps",
			initial: 5,
			op:      func(s *InvestmentService) (decimal.Decimal, error) { return s.RemoveGrams(context.Background(), "10") },
			want:    "0",
		},
		{
			name:    "add garbage is a zero delta",
			initial: 5,
			op:      func(s *InvestmentService) (decimal.Decimal, error) { return s.AddGrams(context.Background(), "lots") },
			want:    "5",
		},
		{
			name:    "add negative clamps",
			initial: 1,
			op:      func(s *InvestmentService) (decimal.Decimal, error) { return s.AddGrams(context.Background(), "-4") },
			want:    "0",
		},
		{
			name:    "set",
			initial: 1,
			op:      func(s *InvestmentService) (decimal.Decimal, error) { return s.SetGrams(context.Background(), "31.1") },
			want:    "31.1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := newService(tt.initial, nil)

			got, err := tt.op(service)

			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			assert.True(t, got.Equal(service.Store.Snapshot().GoldGrams.Decimal))
		})
	}
}

func TestGetHolding(t *testing.T) {
	market := new(MockMarketSource)
	market.On("Latest").Return(&domain.MarketSnapshot{
		Base:          "RUB",
		PricePerGram:  decimal.NewFromInt(9000),
		FXRates:       map[domain.Currency]decimal.Decimal{domain.CurrencyUSD: decimal.RequireFromString("0.01")},
		ChangePercent: domain.ChangePercent{D1: decimal.NewFromInt(1)},
		FetchedAt:     time.Now(),
	})

	service := newService(10, market)

	holding, err := service.GetHolding(context.Background())

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(90).Equal(holding.PricePerGram))
	assert.True(t, decimal.NewFromInt(900).Equal(holding.Value))
	assert.True(t, decimal.RequireFromString("9").Equal(holding.Performance.D1))
	assert.Equal(t, domain.CurrencyUSD, holding.Currency)
	market.AssertExpectations(t)
}
