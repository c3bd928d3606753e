package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// financeRecordRepository implements domain.FinanceRecordRepository
type financeRecordRepository struct {
	db *DB
}

// NewFinanceRecordRepository creates a new finance record repository
func NewFinanceRecordRepository(db *DB) domain.FinanceRecordRepository {
	return &financeRecordRepository{db: db}
}

// recordColumns holds the encoded form of the six state fields
type recordColumns struct {
	cards     []byte
	funds     []byte
	others    []byte
	currency  string
	history   []byte
	goldGrams string
}

// Get retrieves the record for a user
func (r *financeRecordRepository) Get(ctx context.Context, userID string) (*domain.FinanceRecord, error) {
	query := `
		SELECT cards, funds, others, currency, history, gold_grams::text, updated_at
		FROM finance_records
		WHERE user_id = $1
	`

	var cols recordColumns
	record := domain.FinanceRecord{UserID: userID}

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&cols.cards,
		&cols.funds,
		&cols.others,
		&cols.currency,
		&cols.history,
		&cols.goldGrams,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("finance record for user %s: %w", userID, domain.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get finance record: %w", err)
	}

	st, err := decodeColumns(cols)
	if err != nil {
		return nil, err
	}
	record.Data = st

	return &record, nil
}

// Upsert inserts the record or replaces the existing one for the same user
func (r *financeRecordRepository) Upsert(ctx context.Context, record *domain.FinanceRecord) error {
	query := `
		INSERT INTO finance_records (user_id, cards, funds, others, currency, history, gold_grams, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (user_id) DO UPDATE SET
			cards = EXCLUDED.cards,
			funds = EXCLUDED.funds,
			others = EXCLUDED.others,
			currency = EXCLUDED.currency,
			history = EXCLUDED.history,
			gold_grams = EXCLUDED.gold_grams,
			updated_at = now()
		RETURNING updated_at
	`

	cols, err := encodeColumns(record.Data)
	if err != nil {
		return err
	}

	err = r.db.QueryRowContext(ctx, query,
		record.UserID,
		string(cols.cards),
		string(cols.funds),
		string(cols.others),
		cols.currency,
		string(cols.history),
		cols.goldGrams,
	).Scan(&record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert finance record: %w", err)
	}

	return nil
}

func encodeColumns(st domain.State) (recordColumns, error) {
	st = st.Clone()
	st.Normalize()

	var cols recordColumns
	var err error

	if cols.cards, err = json.Marshal(st.Cards); err != nil {
		return cols, fmt.Errorf("failed to encode cards: %w", err)
	}
	if cols.funds, err = json.Marshal(st.Funds); err != nil {
		return cols, fmt.Errorf("failed to encode funds: %w", err)
	}
	if cols.others, err = json.Marshal(st.Others); err != nil {
		return cols, fmt.Errorf("failed to encode others: %w", err)
	}
	if cols.history, err = json.Marshal(st.History); err != nil {
		return cols, fmt.Errorf("failed to encode history: %w", err)
	}
	cols.currency = string(st.Currency)
	cols.goldGrams = st.GoldGrams.String()

	return cols, nil
}

func decodeColumns(cols recordColumns) (domain.State, error) {
	st := domain.State{Currency: domain.Currency(cols.currency)}

	if err := json.Unmarshal(cols.cards, &st.Cards); err != nil {
		return st, fmt.Errorf("failed to decode cards: %w", err)
	}
	if err := json.Unmarshal(cols.funds, &st.Funds); err != nil {
		return st, fmt.Errorf("failed to decode funds: %w", err)
	}
	if err := json.Unmarshal(cols.others, &st.Others); err != nil {
		return st, fmt.Errorf("failed to decode others: %w", err)
	}
	if err := json.Unmarshal(cols.history, &st.History); err != nil {
		return st, fmt.Errorf("failed to decode history: %w", err)
	}

	grams, err := decimal.NewFromString(cols.goldGrams)
	if err != nil {
		return st, fmt.Errorf("failed to parse gold_grams: %w", err)
	}
	st.GoldGrams = domain.NewAmount(grams)

	st.Normalize()
	return st, nil
}
