package domain

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts in state and in derived figures share one JSON shape: a bare number
	decimal.MarshalJSONWithoutQuotes = true
}

// numericPrefix matches the leading number of a user-typed value ("12.5abc" -> "12.5")
var numericPrefix = regexp.MustCompile(`^[+-]?(\d+(\.\d+)?|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount coerces user input into a monetary value.
// Blank or non-numeric input yields zero, a leading numeric prefix is honoured.
// It never fails: malformed input degrades to a zero contribution.
func ParseAmount(s string) decimal.Decimal {
	match := numericPrefix.FindString(strings.TrimSpace(s))
	if match == "" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(match)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Amount is a monetary value in the implicit home unit of account.
// It decodes leniently: numbers, numeric strings, blanks, nulls and garbage are all accepted,
// anything that is not a number becomes zero.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps a decimal value
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// AmountFromInt builds an Amount from an integer number of units
func AmountFromInt(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

// MarshalJSON writes the amount as a bare JSON number
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal.String()), nil
}

// UnmarshalJSON never returns an error; unreadable values decode as zero.
func (a *Amount) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)

	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
		a.Decimal = decimal.Zero
	case trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = ParseAmount(s)
	default:
		d, err := decimal.NewFromString(string(trimmed))
		if err != nil {
			a.Decimal = decimal.Zero
			return nil
		}
		a.Decimal = d
	}

	return nil
}

// FieldValue is a user-supplied field value as text. Clients may send it as a JSON string,
// number or boolean; any other shape decodes as blank and later coerces to zero.
type FieldValue string

// UnmarshalJSON never returns an error
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		*v = ""
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			s = ""
		}
		*v = FieldValue(s)
	case '{', '[', 'n':
		*v = ""
	default:
		// numbers and booleans keep their literal text
		*v = FieldValue(trimmed)
	}
	return nil
}

// String returns the raw text
func (v FieldValue) String() string {
	return string(v)
}
