package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() domain.State {
	return domain.State{
		Cards:    []domain.Card{{ID: "seed-card", Name: "Card A"}},
		Funds:    []domain.Fund{{ID: "seed-fund", Name: "Salary"}},
		Others:   []domain.RecurringPayment{{ID: "seed-other", Name: "Rent"}},
		Currency: domain.CurrencyTRY,
		History:  []domain.Snapshot{},
	}
}

func writeFile(t *testing.T, dir, key, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, key+".json"), []byte(content), 0o644))
}

func TestLoad_EmptyDirectoryUsesDefaults(t *testing.T) {
	repo := NewStateRepository(t.TempDir(), defaults(), logging.Discard())

	st, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.ID("seed-card"), st.Cards[0].ID)
	assert.Equal(t, domain.ID("seed-fund"), st.Funds[0].ID)
	assert.Equal(t, domain.ID("seed-other"), st.Others[0].ID)
	assert.Equal(t, domain.CurrencyTRY, st.Currency)
	assert.Empty(t, st.History)
	assert.True(t, st.GoldGrams.IsZero())
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewStateRepository(t.TempDir(), defaults(), logging.Discard())
	date := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)

	saved := domain.State{
		Cards:     []domain.Card{{ID: "c", Name: "Mine", Limit: domain.AmountFromInt(100), Debt: domain.AmountFromInt(40)}},
		Funds:     []domain.Fund{},
		Others:    []domain.RecurringPayment{{ID: "o", Name: "Gym", Amount: domain.AmountFromInt(30)}},
		Currency:  domain.CurrencyEUR,
		History:   []domain.Snapshot{{ID: "s", Date: date, OverallNet: domain.AmountFromInt(60), Currency: domain.CurrencyEUR}},
		GoldGrams: domain.NewAmount(decimal.RequireFromString("2.25")),
	}
	require.NoError(t, repo.Save(ctx, saved))

	st, err := repo.Load(ctx)

	require.NoError(t, err)
	require.Len(t, st.Cards, 1)
	assert.Equal(t, "Mine", st.Cards[0].Name)
	assert.Equal(t, "40", st.Cards[0].Debt.String())
	assert.Empty(t, st.Funds, "an empty collection is kept, not reseeded")
	assert.Equal(t, "Gym", st.Others[0].Name)
	assert.Equal(t, domain.CurrencyEUR, st.Currency)
	require.Len(t, st.History, 1)
	assert.True(t, date.Equal(st.History[0].Date))
	assert.Equal(t, "2.25", st.GoldGrams.String())

	matches, err := filepath.Glob(filepath.Join(repo.Dir(), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files are cleaned up")
}

func TestLoad_PerKeyFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, KeyCards, `{not json`)
	writeFile(t, dir, KeyFunds, `[{"id":"f","name":"Kept","amount":"12"}]`)
	writeFile(t, dir, KeyOthers, `{"id":"o"}`)
	writeFile(t, dir, KeyHistory, `null`)
	writeFile(t, dir, KeyCurrency, `"GBP"`)
	writeFile(t, dir, KeyGoldGrams, `"7.5"`)

	repo := NewStateRepository(dir, defaults(), logging.Discard())
	st, err := repo.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.ID("seed-card"), st.Cards[0].ID, "corrupt cards fall back to seed")
	require.Len(t, st.Funds, 1)
	assert.Equal(t, "Kept", st.Funds[0].Name, "valid funds survive a corrupt neighbour")
	assert.Equal(t, "12", st.Funds[0].Amount.String())
	assert.Equal(t, domain.ID("seed-other"), st.Others[0].ID, "non-array falls back to seed")
	assert.Empty(t, st.History)
	assert.Equal(t, domain.CurrencyTRY, st.Currency)
	assert.Equal(t, "7.5", st.GoldGrams.String())
}

func TestLoad_DefaultsAreNotShared(t *testing.T) {
	repo := NewStateRepository(t.TempDir(), defaults(), logging.Discard())

	first, err := repo.Load(context.Background())
	require.NoError(t, err)
	first.Cards[0].Name = "changed"

	second, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Card A", second.Cards[0].Name)
}

func TestDirFor(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "local"), DirFor("data", ""))
	assert.Equal(t, filepath.Join("data", "users", "abc-123"), DirFor("data", "abc-123"))
	assert.Equal(t, filepath.Join("data", "users", "______etc"), DirFor("data", "../../etc"))
	assert.Equal(t, filepath.Join("data", "users", "__"), DirFor("data", ".."))
}

func TestMarketCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMarketCache(t.TempDir())

	_, err := cache.GetLatest(ctx)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	snapshot := &domain.MarketSnapshot{
		Base:          "RUB",
		PricePerGram:  decimal.RequireFromString("7234.56"),
		ChangePercent: domain.ChangePercent{D1: decimal.RequireFromString("0.5")},
		FXRates:       map[domain.Currency]decimal.Decimal{domain.CurrencyUSD: decimal.RequireFromString("0.0112")},
		FetchedAt:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, cache.Add(ctx, snapshot))

	got, err := cache.GetLatest(ctx)
	require.NoError(t, err)
	assert.True(t, snapshot.PricePerGram.Equal(got.PricePerGram))
	assert.True(t, snapshot.RateFor(domain.CurrencyUSD).Equal(got.RateFor(domain.CurrencyUSD)))
	assert.True(t, snapshot.ChangePercent.D1.Equal(got.ChangePercent.D1))
	assert.True(t, snapshot.FetchedAt.Equal(got.FetchedAt))
}
