package domain

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// State is the complete user-owned dataset: entities, history, currency and gold holding.
// It is also the exact shape of a backup document and of the remote record payload.
type State struct {
	Cards     []Card             `json:"cards"`
	Funds     []Fund             `json:"funds"`
	Others    []RecurringPayment `json:"others"`
	Currency  Currency           `json:"currency"`
	History   []Snapshot         `json:"history"`
	GoldGrams Amount             `json:"goldGrams"`
}

// Clone returns a deep copy that shares no slices with s
func (s State) Clone() State {
	return State{
		Cards:     append([]Card{}, s.Cards...),
		Funds:     append([]Fund{}, s.Funds...),
		Others:    append([]RecurringPayment{}, s.Others...),
		Currency:  s.Currency,
		History:   append([]Snapshot{}, s.History...),
		GoldGrams: s.GoldGrams,
	}
}

// Equal reports whether s and other hold the same data in their JSON form,
// so amounts that differ only in trailing zeros compare equal.
func (s State) Equal(other State) bool {
	a, errA := json.Marshal(s)
	b, errB := json.Marshal(other)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// Normalize repairs values that are well-typed but out of range:
// unsupported currency falls back to the default, negative gold becomes zero,
// nil collections become empty ones.
func (s *State) Normalize() {
	if !s.Currency.IsSupported() {
		s.Currency = DefaultCurrency
	}
	if s.GoldGrams.IsNegative() {
		s.GoldGrams = NewAmount(decimal.Zero)
	}
	if s.Cards == nil {
		s.Cards = []Card{}
	}
	if s.Funds == nil {
		s.Funds = []Fund{}
	}
	if s.Others == nil {
		s.Others = []RecurringPayment{}
	}
	if s.History == nil {
		s.History = []Snapshot{}
	}
}

// Validate checks that ids are unique within each collection
func (s State) Validate() error {
	if err := uniqueIDs(string(KindCard), len(s.Cards), func(i int) ID { return s.Cards[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs(string(KindFund), len(s.Funds), func(i int) ID { return s.Funds[i].ID }); err != nil {
		return err
	}
	if err := uniqueIDs(string(KindOther), len(s.Others), func(i int) ID { return s.Others[i].ID }); err != nil {
		return err
	}
	return uniqueIDs("history", len(s.History), func(i int) ID { return s.History[i].ID })
}

func uniqueIDs(collection string, n int, idAt func(int) ID) error {
	seen := make(map[ID]struct{}, n)
	for i := 0; i < n; i++ {
		id := idAt(i)
		if _, ok := seen[id]; ok {
			return fmt.Errorf("%w: duplicate id %q in %s", ErrInvalidBackup, id, collection)
		}
		seen[id] = struct{}{}
	}
	return nil
}
