package backup

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

var requiredKeys = []string{"cards", "funds", "others", "currency", "history", "goldGrams"}

var arrayKeys = []string{"cards", "funds", "others", "history"}

// Export encodes the full state as a backup document with exactly the six state keys
func Export(st domain.State) ([]byte, error) {
	st = st.Clone()
	st.Normalize()

	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// Import decodes and validates a backup document.
// Logic:
//  1. The document must be a JSON object holding all six state keys
//  2. cards, funds, others and history must be arrays; currency a supported code
//  3. Records decode leniently (bad numbers become zero), ids must be unique
//
// Any violation rejects the whole document.
func Import(doc []byte) (domain.State, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(doc, &raw); err != nil {
		return domain.State{}, fmt.Errorf("%w: not a JSON object: %v", domain.ErrInvalidBackup, err)
	}
	if raw == nil {
		return domain.State{}, fmt.Errorf("%w: not a JSON object", domain.ErrInvalidBackup)
	}

	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return domain.State{}, fmt.Errorf("%w: missing key %q", domain.ErrInvalidBackup, key)
		}
	}

	for _, key := range arrayKeys {
		if !isArray(raw[key]) {
			return domain.State{}, fmt.Errorf("%w: %q must be an array", domain.ErrInvalidBackup, key)
		}
	}

	var code string
	if err := json.Unmarshal(raw["currency"], &code); err != nil {
		return domain.State{}, fmt.Errorf("%w: currency must be a string", domain.ErrInvalidBackup)
	}
	currency, err := domain.ParseCurrency(code)
	if err != nil {
		return domain.State{}, fmt.Errorf("%w: %v", domain.ErrInvalidBackup, err)
	}

	st := domain.State{Currency: currency}
	if err := decodeInto(raw["cards"], &st.Cards, "cards"); err != nil {
		return domain.State{}, err
	}
	if err := decodeInto(raw["funds"], &st.Funds, "funds"); err != nil {
		return domain.State{}, err
	}
	if err := decodeInto(raw["others"], &st.Others, "others"); err != nil {
		return domain.State{}, err
	}
	if err := decodeInto(raw["history"], &st.History, "history"); err != nil {
		return domain.State{}, err
	}
	if err := json.Unmarshal(raw["goldGrams"], &st.GoldGrams); err != nil {
		return domain.State{}, fmt.Errorf("%w: goldGrams: %v", domain.ErrInvalidBackup, err)
	}

	st.Normalize()
	if err := st.Validate(); err != nil {
		return domain.State{}, err
	}

	return st, nil
}

func decodeInto(data json.RawMessage, target interface{}, key string) error {
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidBackup, key, err)
	}
	return nil
}

func isArray(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}
