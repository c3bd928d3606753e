package domain

import "fmt"

// Currency is an ISO 4217 code. It selects the FX rate used for gold valuation and the
// display format; it never converts stored entity amounts.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUAH Currency = "UAH"
	CurrencyEUR Currency = "EUR"
	CurrencyUSD Currency = "USD"

	// DefaultCurrency is used when no valid preference is stored
	DefaultCurrency = CurrencyTRY
)

// SupportedCurrencies returns the selectable currencies in toggle order
func SupportedCurrencies() []Currency {
	return []Currency{CurrencyTRY, CurrencyUAH, CurrencyEUR, CurrencyUSD}
}

// IsSupported reports whether c is part of the selectable set
func (c Currency) IsSupported() bool {
	for _, s := range SupportedCurrencies() {
		if s == c {
			return true
		}
	}
	return false
}

// Next returns the currency following c in toggle order, wrapping around.
// An unsupported currency moves to the first entry.
func (c Currency) Next() Currency {
	supported := SupportedCurrencies()
	for i, s := range supported {
		if s == c {
			return supported[(i+1)%len(supported)]
		}
	}
	return supported[0]
}

// ParseCurrency validates a currency code against the supported set
func ParseCurrency(s string) (Currency, error) {
	c := Currency(s)
	if !c.IsSupported() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return c, nil
}
