package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_CloneIsIndependent(t *testing.T) {
	original := State{
		Cards:    []Card{{ID: "c1", Name: "A"}},
		Funds:    []Fund{{ID: "f1", Name: "B"}},
		Currency: CurrencyUSD,
	}

	clone := original.Clone()
	clone.Cards[0].Name = "changed"
	clone.Funds = append(clone.Funds, Fund{ID: "f2"})

	assert.Equal(t, "A", original.Cards[0].Name)
	assert.Len(t, original.Funds, 1)
}

func TestState_Normalize(t *testing.T) {
	s := State{Currency: "GBP", GoldGrams: AmountFromInt(-3)}
	s.Normalize()

	assert.Equal(t, CurrencyTRY, s.Currency)
	assert.True(t, s.GoldGrams.IsZero())
	assert.NotNil(t, s.Cards)
	assert.NotNil(t, s.Funds)
	assert.NotNil(t, s.Others)
	assert.NotNil(t, s.History)
}

func TestState_Validate(t *testing.T) {
	valid := State{
		Cards: []Card{{ID: "1"}, {ID: "2"}},
		Funds: []Fund{{ID: "1"}},
	}
	assert.NoError(t, valid.Validate())

	duplicate := State{Others: []RecurringPayment{{ID: "x"}, {ID: "x"}}}
	err := duplicate.Validate()
	assert.ErrorIs(t, err, ErrInvalidBackup)
	assert.Contains(t, err.Error(), "others")
}

func TestState_JSONKeys(t *testing.T) {
	s := State{Currency: CurrencyTRY}
	s.Normalize()

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"cards", "funds", "others", "currency", "history", "goldGrams"}, keys)
}

func TestSortedByDate(t *testing.T) {
	history := []Snapshot{
		{ID: "new", Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "old", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "mid", Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
	}

	sorted := SortedByDate(history)

	require.Len(t, sorted, 3)
	assert.Equal(t, ID("old"), sorted[0].ID)
	assert.Equal(t, ID("mid"), sorted[1].ID)
	assert.Equal(t, ID("new"), sorted[2].ID)
	assert.Equal(t, ID("new"), history[0].ID, "input must not be reordered")
}

func TestState_Equal(t *testing.T) {
	base := State{
		Cards:     []Card{{ID: "c1", Name: "A", Limit: AmountFromInt(100)}},
		Currency:  CurrencyUSD,
		GoldGrams: NewAmount(ParseAmount("1.5")),
	}
	base.Normalize()

	same := base.Clone()
	same.GoldGrams = NewAmount(ParseAmount("1.50"))
	assert.True(t, base.Equal(same))

	renamed := base.Clone()
	renamed.Cards[0].Name = "B"
	assert.False(t, base.Equal(renamed))

	otherCurrency := base.Clone()
	otherCurrency.Currency = CurrencyEUR
	assert.False(t, base.Equal(otherCurrency))
}
