package domain

import (
	"context"
	"time"
)

// FinanceRecord is the remote copy of one user's State
type FinanceRecord struct {
	UserID    string
	Data      State
	UpdatedAt time.Time
}

// FinanceRecordRepository defines the interface for the remote per-user record store
type FinanceRecordRepository interface {
	// Get retrieves the record for a user; ErrRecordNotFound when none exists yet
	Get(ctx context.Context, userID string) (*FinanceRecord, error)

	// Upsert creates or replaces the record for record.UserID and sets UpdatedAt
	Upsert(ctx context.Context, record *FinanceRecord) error
}

// LocalStateRepository defines the interface for the device-local keyed store
type LocalStateRepository interface {
	// Load reads every key, substituting defaults for missing or corrupt keys
	Load(ctx context.Context) (State, error)

	// Save writes every key of the state
	Save(ctx context.Context, state State) error
}

// MarketSnapshotRepository defines the interface for market data persistence
type MarketSnapshotRepository interface {
	// Add stores a new market snapshot
	Add(ctx context.Context, snapshot *MarketSnapshot) error

	// GetLatest retrieves the most recent snapshot; ErrRecordNotFound when none exists
	GetLatest(ctx context.Context) (*MarketSnapshot, error)
}

// MarketProvider fetches fresh market data from an external source
type MarketProvider interface {
	Fetch(ctx context.Context, now time.Time) (*MarketSnapshot, error)
}

// TransactionSource lists display-only bank transactions for a user
type TransactionSource interface {
	List(ctx context.Context, userID string) ([]BankTransaction, error)
}

// Notifier is told when a saved snapshot sets a new all-time high
type Notifier interface {
	NotifyAllTimeHigh(ctx context.Context, snapshot Snapshot, previousHigh Amount) error
}
