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

// marketSnapshotRepository implements domain.MarketSnapshotRepository
type marketSnapshotRepository struct {
	db *DB
}

// NewMarketSnapshotRepository creates a new market snapshot repository
func NewMarketSnapshotRepository(db *DB) domain.MarketSnapshotRepository {
	return &marketSnapshotRepository{db: db}
}

// Add stores a new market snapshot
func (r *marketSnapshotRepository) Add(ctx context.Context, snapshot *domain.MarketSnapshot) error {
	query := `
		INSERT INTO market_snapshots (base, price_per_gram, change_percent, fx_rates, fetched_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	changePercent, err := json.Marshal(snapshot.ChangePercent)
	if err != nil {
		return fmt.Errorf("failed to encode change_percent: %w", err)
	}
	fxRates, err := json.Marshal(snapshot.FXRates)
	if err != nil {
		return fmt.Errorf("failed to encode fx_rates: %w", err)
	}

	_, err = r.db.ExecContext(ctx, query,
		string(snapshot.Base),
		snapshot.PricePerGram.String(),
		string(changePercent),
		string(fxRates),
		snapshot.FetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert market snapshot: %w", err)
	}

	return nil
}

// GetLatest retrieves the most recently fetched snapshot
func (r *marketSnapshotRepository) GetLatest(ctx context.Context) (*domain.MarketSnapshot, error) {
	query := `
		SELECT base, price_per_gram::text, change_percent, fx_rates, fetched_at
		FROM market_snapshots
		ORDER BY fetched_at DESC
		LIMIT 1
	`

	var snapshot domain.MarketSnapshot
	var base, priceStr string
	var changePercent, fxRates []byte

	err := r.db.QueryRowContext(ctx, query).Scan(
		&base,
		&priceStr,
		&changePercent,
		&fxRates,
		&snapshot.FetchedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no market snapshot stored: %w", domain.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("failed to get latest market snapshot: %w", err)
	}
	snapshot.Base = domain.Currency(base)

	// Parse price_per_gram (NUMERIC)
	price, err := decimal.NewFromString(priceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse price_per_gram: %w", err)
	}
	snapshot.PricePerGram = price

	if err := json.Unmarshal(changePercent, &snapshot.ChangePercent); err != nil {
		return nil, fmt.Errorf("failed to decode change_percent: %w", err)
	}
	if err := json.Unmarshal(fxRates, &snapshot.FXRates); err != nil {
		return nil, fmt.Errorf("failed to decode fx_rates: %w", err)
	}

	return &snapshot, nil
}
