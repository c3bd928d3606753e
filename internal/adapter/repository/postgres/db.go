package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=finance sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

const schema = `
	CREATE TABLE IF NOT EXISTS finance_records (
		user_id    TEXT PRIMARY KEY,
		cards      JSONB NOT NULL DEFAULT '[]'::jsonb,
		funds      JSONB NOT NULL DEFAULT '[]'::jsonb,
		others     JSONB NOT NULL DEFAULT '[]'::jsonb,
		currency   TEXT NOT NULL DEFAULT 'TRY',
		history    JSONB NOT NULL DEFAULT '[]'::jsonb,
		gold_grams NUMERIC NOT NULL DEFAULT 0,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS market_snapshots (
		id             BIGSERIAL PRIMARY KEY,
		base           TEXT NOT NULL,
		price_per_gram NUMERIC NOT NULL,
		change_percent JSONB NOT NULL,
		fx_rates       JSONB NOT NULL,
		fetched_at     TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS market_snapshots_fetched_at_idx ON market_snapshots (fetched_at DESC);
`

// EnsureSchema creates the tables when they do not exist yet
func (db *DB) EnsureSchema(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}
