package format

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		currency domain.Currency
		want     string
	}{
		{"lira", "22500", domain.CurrencyTRY, "₺22,500"},
		{"rounds to whole units", "1234.56", domain.CurrencyUSD, "$1,235"},
		{"negative", "-3500", domain.CurrencyEUR, "-€3,500"},
		{"hryvnia template", "1250", domain.CurrencyUAH, "1,250 ₴"},
		{"zero", "0", domain.CurrencyUSD, "$0"},
		{"unknown code", "10", domain.Currency("XXY"), "10 XXY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(decimal.RequireFromString(tt.amount), tt.currency))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "+12.5%", Percent(decimal.RequireFromString("12.46")))
	assert.Equal(t, "-3.0%", Percent(decimal.NewFromInt(-3)))
	assert.Equal(t, "0.0%", Percent(decimal.Zero))
}

func TestGrams(t *testing.T) {
	assert.Equal(t, "12.346 g", Grams(decimal.RequireFromString("12.3456")))
	assert.Equal(t, "0 g", Grams(decimal.Zero))
}
