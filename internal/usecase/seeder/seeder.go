package seeder

import (
	"context"
	"fmt"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// Fixed ids for the sample records so repeated fallbacks never produce duplicates
var (
	SEED_CARD_MAIN    = domain.ID("00000000-0000-0000-0000-000000000101")
	SEED_CARD_BACKUP  = domain.ID("00000000-0000-0000-0000-000000000102")
	SEED_CARD_C       = domain.ID("00000000-0000-0000-0000-000000000103")
	SEED_FUND_SALARY  = domain.ID("00000000-0000-0000-0000-000000000201")
	SEED_FUND_SAVINGS = domain.ID("00000000-0000-0000-0000-000000000202")
	SEED_FUND_WALLET  = domain.ID("00000000-0000-0000-0000-000000000203")
	SEED_OTHER_RENT   = domain.ID("00000000-0000-0000-0000-000000000301")
	SEED_OTHER_DORM   = domain.ID("00000000-0000-0000-0000-000000000302")
)

// DefaultCards returns the sample cards shown on first run
func DefaultCards() []domain.Card {
	return []domain.Card{
		{ID: SEED_CARD_MAIN, Name: "Card A (Main Card)", Limit: domain.AmountFromInt(15000), Money: domain.AmountFromInt(2000), Debt: domain.AmountFromInt(3500)},
		{ID: SEED_CARD_BACKUP, Name: "Card B (Backup)", Limit: domain.AmountFromInt(5000), Money: domain.AmountFromInt(0), Debt: domain.AmountFromInt(0)},
		{ID: SEED_CARD_C, Name: "Card C", Limit: domain.AmountFromInt(2500), Money: domain.AmountFromInt(500), Debt: domain.AmountFromInt(1250)},
	}
}

// DefaultFunds returns the sample funds shown on first run
func DefaultFunds() []domain.Fund {
	return []domain.Fund{
		{ID: SEED_FUND_SALARY, Name: "Salary Account", Amount: domain.AmountFromInt(8500)},
		{ID: SEED_FUND_SAVINGS, Name: "Savings Account", Amount: domain.AmountFromInt(12000)},
		{ID: SEED_FUND_WALLET, Name: "Wallet / Cash", Amount: domain.AmountFromInt(450)},
	}
}

// DefaultOthers returns the sample recurring payments shown on first run
func DefaultOthers() []domain.RecurringPayment {
	return []domain.RecurringPayment{
		{ID: SEED_OTHER_RENT, Name: "Rent", Amount: domain.AmountFromInt(0)},
		{ID: SEED_OTHER_DORM, Name: "Dorm / Tuition", Amount: domain.AmountFromInt(0)},
	}
}

// DefaultState returns the complete first-run state
func DefaultState() domain.State {
	return domain.State{
		Cards:     DefaultCards(),
		Funds:     DefaultFunds(),
		Others:    DefaultOthers(),
		Currency:  domain.DefaultCurrency,
		History:   []domain.Snapshot{},
		GoldGrams: domain.AmountFromInt(0),
	}
}

// Seeder writes the first-run state to a local store
type Seeder struct {
	repo domain.LocalStateRepository
}

// NewSeeder creates a new Seeder instance
func NewSeeder(repo domain.LocalStateRepository) *Seeder {
	return &Seeder{
		repo: repo,
	}
}

// Reset overwrites the local store with the first-run state
func (s *Seeder) Reset(ctx context.Context) (domain.State, error) {
	st := DefaultState()
	if err := st.Validate(); err != nil {
		return domain.State{}, err
	}

	if err := s.repo.Save(ctx, st); err != nil {
		return domain.State{}, fmt.Errorf("failed to write default state: %w", err)
	}
	return st, nil
}
