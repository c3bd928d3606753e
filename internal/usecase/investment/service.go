package investment

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
)

// Holding represents the gold position valued in the selected currency
type Holding struct {
	Grams           decimal.Decimal           `json:"grams"`
	PricePerGram    decimal.Decimal           `json:"pricePerGram"`
	Value           decimal.Decimal           `json:"value"`
	PortfolioWeight decimal.Decimal           `json:"portfolioWeight"`
	Performance     dashboard.GoldPerformance `json:"performance"`
	Currency        domain.Currency           `json:"currency"`
}

// InvestmentService handles the gold holding
type InvestmentService struct {
	Store     *state.Store
	Dashboard *dashboard.DashboardService
}

// NewInvestmentService creates a new InvestmentService instance
func NewInvestmentService(store *state.Store, dashboardService *dashboard.DashboardService) *InvestmentService {
	return &InvestmentService{
		Store:     store,
		Dashboard: dashboardService,
	}
}

// AddGrams increases the holding. Input is coerced like any monetary field.
// Logic: grams = max(0, grams + value)
func (s *InvestmentService) AddGrams(ctx context.Context, value string) (decimal.Decimal, error) {
	delta := domain.ParseAmount(value)
	return s.apply(func(current decimal.Decimal) decimal.Decimal {
		return current.Add(delta)
	})
}

// RemoveGrams decreases the holding, never below zero
// Logic: grams = max(0, grams - value)
func (s *InvestmentService) RemoveGrams(ctx context.Context, value string) (decimal.Decimal, error) {
	delta := domain.ParseAmount(value)
	return s.apply(func(current decimal.Decimal) decimal.Decimal {
		return current.Sub(delta)
	})
}

// SetGrams replaces the holding, clamped at zero
func (s *InvestmentService) SetGrams(ctx context.Context, value string) (decimal.Decimal, error) {
	grams := domain.ParseAmount(value)
	return s.apply(func(decimal.Decimal) decimal.Decimal {
		return grams
	})
}

// GetHolding values the current holding using the last known market data
func (s *InvestmentService) GetHolding(ctx context.Context) (*Holding, error) {
	bundle, err := s.Dashboard.GetMetrics(ctx)
	if err != nil {
		return nil, err
	}

	return &Holding{
		Grams:           bundle.GoldGrams,
		PricePerGram:    bundle.GoldPricePerGram,
		Value:           bundle.GoldValue,
		PortfolioWeight: bundle.PortfolioWeight,
		Performance:     bundle.GoldPerformance,
		Currency:        bundle.Currency,
	}, nil
}

func (s *InvestmentService) apply(next func(current decimal.Decimal) decimal.Decimal) (decimal.Decimal, error) {
	var result decimal.Decimal

	err := s.Store.Update(func(st *domain.State) error {
		grams := next(st.GoldGrams.Decimal)
		if grams.IsNegative() {
			grams = decimal.Zero
		}
		st.GoldGrams = domain.NewAmount(grams)
		result = grams
		return nil
	})

	return result, err
}
