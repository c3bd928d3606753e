package currency

import (
	"context"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
)

// CurrencyService handles the selected display currency.
// Changing it never rewrites stored amounts; it only selects the FX rate for gold and the formatter.
type CurrencyService struct {
	Store *state.Store
}

// NewCurrencyService creates a new CurrencyService instance
func NewCurrencyService(store *state.Store) *CurrencyService {
	return &CurrencyService{
		Store: store,
	}
}

// Current returns the selected currency
func (s *CurrencyService) Current(ctx context.Context) domain.Currency {
	return s.Store.Snapshot().Currency
}

// Toggle advances to the next supported currency, wrapping around
func (s *CurrencyService) Toggle(ctx context.Context) (domain.Currency, error) {
	var next domain.Currency
	err := s.Store.Update(func(st *domain.State) error {
		next = st.Currency.Next()
		st.Currency = next
		return nil
	})
	return next, err
}

// Set selects a currency explicitly
func (s *CurrencyService) Set(ctx context.Context, code string) (domain.Currency, error) {
	c, err := domain.ParseCurrency(code)
	if err != nil {
		return "", err
	}

	err = s.Store.Update(func(st *domain.State) error {
		st.Currency = c
		return nil
	})
	return c, err
}
