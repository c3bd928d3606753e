// Package format renders amounts for people: whole currency units with the currency symbol.
package format

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// Money formats an amount in the given currency with no fraction digits ("₺22,500", "1,250 ₴").
// Unknown currency codes fall back to "<amount> <code>".
func Money(amount decimal.Decimal, currency domain.Currency) string {
	units := amount.Round(0).IntPart()

	cur := money.GetCurrency(string(currency))
	if cur == nil {
		return fmt.Sprintf("%d %s", units, currency)
	}

	f := cur.Formatter()
	f.Fraction = 0
	return f.Format(units)
}

// Percent formats a percentage with one decimal and an explicit sign ("+12.5%")
func Percent(p decimal.Decimal) string {
	sign := ""
	if p.IsPositive() {
		sign = "+"
	}
	return sign + p.StringFixed(1) + "%"
}

// Grams formats a gold weight with up to three decimals
func Grams(g decimal.Decimal) string {
	return g.Round(3).String() + " g"
}
