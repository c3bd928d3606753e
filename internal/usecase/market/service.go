package market

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
)

// MarketService keeps the last good market snapshot used for gold valuation.
// A failed refresh never discards the previous snapshot.
type MarketService struct {
	Provider domain.MarketProvider
	Cache    domain.MarketSnapshotRepository // optional
	Logger   *logrus.Logger
	Now      func() time.Time

	mu     sync.RWMutex
	latest *domain.MarketSnapshot
}

// NewMarketService creates a new MarketService instance
func NewMarketService(provider domain.MarketProvider, cache domain.MarketSnapshotRepository, logger *logrus.Logger) *MarketService {
	return &MarketService{
		Provider: provider,
		Cache:    cache,
		Logger:   logger,
		Now:      time.Now,
	}
}

// Latest returns the last good snapshot, nil when none was ever loaded.
// The returned snapshot must not be modified.
func (s *MarketService) Latest() *domain.MarketSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

// Set installs a snapshot directly
func (s *MarketService) Set(snapshot *domain.MarketSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = snapshot
}

// LoadCached restores the last persisted snapshot so restarts degrade gracefully
func (s *MarketService) LoadCached(ctx context.Context) error {
	if s.Cache == nil {
		return nil
	}

	snapshot, err := s.Cache.GetLatest(ctx)
	if errors.Is(err, domain.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load cached market data: %w", err)
	}

	s.Set(snapshot)
	s.Logger.WithField("fetched_at", snapshot.FetchedAt).Info("Loaded cached market data")
	return nil
}

// Refresh fetches fresh data
// Logic:
//  1. Fetch from the provider; on failure keep the previous snapshot and return the error
//  2. Install the new snapshot
//  3. Persist it to the cache; cache failures are logged only
func (s *MarketService) Refresh(ctx context.Context) (*domain.MarketSnapshot, error) {
	snapshot, err := s.Provider.Fetch(ctx, s.Now())
	if err != nil {
		s.Logger.WithError(err).Warn("Market refresh failed, keeping previous data")
		return s.Latest(), fmt.Errorf("failed to fetch market data: %w", err)
	}

	s.Set(snapshot)

	if s.Cache != nil {
		if err := s.Cache.Add(ctx, snapshot); err != nil {
			s.Logger.WithError(err).Warn("Failed to cache market data")
		}
	}

	s.Logger.WithFields(logrus.Fields{
		"price_per_gram": snapshot.PricePerGram.String(),
		"rates":          len(snapshot.FXRates),
	}).Info("Market data refreshed")

	return snapshot, nil
}
