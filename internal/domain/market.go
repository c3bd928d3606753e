package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ChangePercent holds the relative gold price movement over the standard windows
type ChangePercent struct {
	D1 decimal.Decimal `json:"d1"`
	W1 decimal.Decimal `json:"w1"`
	M1 decimal.Decimal `json:"m1"`
	Y1 decimal.Decimal `json:"y1"`
}

// MarketSnapshot represents the last known market data used for gold valuation.
// PricePerGram is quoted in Base; FXRates holds multipliers from Base into each currency.
type MarketSnapshot struct {
	Base          Currency                     `json:"base"`
	PricePerGram  decimal.Decimal              `json:"pricePerGram"`
	ChangePercent ChangePercent                `json:"changePercent"`
	FXRates       map[Currency]decimal.Decimal `json:"fxRates"`
	FetchedAt     time.Time                    `json:"fetchedAt"`
}

// RateFor returns the multiplier that converts a Base amount into c.
// The base currency always converts at 1; an unknown rate yields zero.
func (m *MarketSnapshot) RateFor(c Currency) decimal.Decimal {
	if m == nil {
		return decimal.Zero
	}
	if c == m.Base && c != "" {
		return decimal.NewFromInt(1)
	}
	rate, ok := m.FXRates[c]
	if !ok {
		return decimal.Zero
	}
	return rate
}

// IsZero reports whether no market data has ever been loaded
func (m *MarketSnapshot) IsZero() bool {
	return m == nil || (m.PricePerGram.IsZero() && len(m.FXRates) == 0)
}
