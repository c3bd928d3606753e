package domain

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// BankTransaction represents a display-only transaction pulled from a linked bank account.
// Positive amounts are money leaving the account. Transactions never enter the metrics bundle.
type BankTransaction struct {
	ID           string          `json:"transaction_id"`
	Date         string          `json:"date"` // YYYY-MM-DD
	Name         string          `json:"name"`
	MerchantName string          `json:"merchant_name,omitempty"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Institution  string          `json:"institution_name,omitempty"`
}

// IsOutflow reports whether the transaction spent money
func (t BankTransaction) IsOutflow() bool {
	return t.Amount.IsPositive()
}

// DisplayCategory turns a raw category ("food_and_drink") into a title ("Food And Drink").
// Empty categories are reported as "Other".
func DisplayCategory(raw string) string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "_", " "))
	if raw == "" {
		return "Other"
	}

	runes := []rune(raw)
	startOfWord := true
	for i, r := range runes {
		isWordRune := unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
		if isWordRune && startOfWord {
			runes[i] = unicode.ToUpper(r)
		}
		startOfWord = !isWordRune
	}
	return string(runes)
}
