package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// MarketCache implements domain.MarketSnapshotRepository with a single JSON file
// holding the most recent snapshot
type MarketCache struct {
	path string
	mu   sync.Mutex
}

// NewMarketCache creates a new MarketCache stored under dir
func NewMarketCache(dir string) *MarketCache {
	return &MarketCache{path: filepath.Join(dir, "market.json")}
}

// Add replaces the cached snapshot
func (c *MarketCache) Add(ctx context.Context, snapshot *domain.MarketSnapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := writeJSON(c.path, snapshot); err != nil {
		return fmt.Errorf("failed to write market cache: %w", err)
	}
	return nil
}

// GetLatest reads the cached snapshot; ErrRecordNotFound when nothing was cached yet
func (c *MarketCache) GetLatest(ctx context.Context) (*domain.MarketSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read market cache: %w", err)
	}

	var snapshot domain.MarketSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode market cache: %w", err)
	}
	return &snapshot, nil
}
