package currency

import (
	"context"
	"testing"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggle_CyclesThroughSupportedSet(t *testing.T) {
	ctx := context.Background()
	service := NewCurrencyService(state.NewStore(domain.State{Currency: domain.CurrencyTRY}))

	var seen []domain.Currency
	for i := 0; i < 4; i++ {
		c, err := service.Toggle(ctx)
		require.NoError(t, err)
		seen = append(seen, c)
	}

	assert.Equal(t, []domain.Currency{domain.CurrencyUAH, domain.CurrencyEUR, domain.CurrencyUSD, domain.CurrencyTRY}, seen)
}

func TestToggle_DoesNotTouchAmounts(t *testing.T) {
	ctx := context.Background()
	store := state.NewStore(domain.State{
		Currency: domain.CurrencyTRY,
		Funds:    []domain.Fund{{ID: "f", Amount: domain.AmountFromInt(8500)}},
	})
	service := NewCurrencyService(store)

	_, err := service.Toggle(ctx)
	require.NoError(t, err)

	assert.Equal(t, "8500", store.Snapshot().Funds[0].Amount.String())
}

func TestSet(t *testing.T) {
	ctx := context.Background()
	service := NewCurrencyService(state.NewStore(domain.State{}))

	c, err := service.Set(ctx, "EUR")
	require.NoError(t, err)
	assert.Equal(t, domain.CurrencyEUR, c)
	assert.Equal(t, domain.CurrencyEUR, service.Current(ctx))

	_, err = service.Set(ctx, "JPY")
	assert.ErrorIs(t, err, domain.ErrUnsupportedCurrency)
	assert.Equal(t, domain.CurrencyEUR, service.Current(ctx))
}

func TestCurrent_DefaultsToTRY(t *testing.T) {
	service := NewCurrencyService(state.NewStore(domain.State{}))
	assert.Equal(t, domain.CurrencyTRY, service.Current(context.Background()))
}
