package seeder

import (
	"context"
	"errors"
	"testing"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLocalStateRepository is a mock implementation of LocalStateRepository
type MockLocalStateRepository struct {
	mock.Mock
}

func (m *MockLocalStateRepository) Load(ctx context.Context) (domain.State, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.State), args.Error(1)
}

func (m *MockLocalStateRepository) Save(ctx context.Context, st domain.State) error {
	args := m.Called(ctx, st)
	return args.Error(0)
}

func TestDefaultState(t *testing.T) {
	st := DefaultState()

	require.NoError(t, st.Validate())
	assert.Len(t, st.Cards, 3)
	assert.Len(t, st.Funds, 3)
	assert.Len(t, st.Others, 2)
	assert.Equal(t, domain.CurrencyTRY, st.Currency)
	assert.Empty(t, st.History)
	assert.True(t, st.GoldGrams.IsZero())

	b := dashboard.Compute(dashboard.Input{State: st})
	assert.Equal(t, "22500", b.TotalLimit.String())
	assert.Equal(t, "4750", b.TotalDebt.String())
	assert.Equal(t, "23450", b.TotalAssets.String())
	assert.Equal(t, "18700", b.OverallNet.String())
}

func TestDefaultState_ReturnsFreshSlices(t *testing.T) {
	first := DefaultState()
	first.Cards[0].Name = "changed"

	assert.Equal(t, "Card A (Main Card)", DefaultState().Cards[0].Name)
}

func TestSeeder_Reset(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLocalStateRepository)
	seeder := NewSeeder(mockRepo)

	mockRepo.On("Save", ctx, mock.MatchedBy(func(st domain.State) bool {
		return len(st.Cards) == 3 && st.Cards[0].ID == SEED_CARD_MAIN
	})).Return(nil)

	st, err := seeder.Reset(ctx)

	require.NoError(t, err)
	assert.Len(t, st.Funds, 3)
	mockRepo.AssertExpectations(t)
}

func TestSeeder_Reset_SaveFails(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockLocalStateRepository)
	seeder := NewSeeder(mockRepo)

	mockRepo.On("Save", ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := seeder.Reset(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write default state")
}
