package snapshot

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
)

// SnapshotService handles the net-worth history log
type SnapshotService struct {
	Store     *state.Store
	Dashboard *dashboard.DashboardService
	Notifier  domain.Notifier // optional
	Logger    *logrus.Logger
}

// NewSnapshotService creates a new SnapshotService instance
func NewSnapshotService(store *state.Store, dashboardService *dashboard.DashboardService, notifier domain.Notifier, logger *logrus.Logger) *SnapshotService {
	return &SnapshotService{
		Store:     store,
		Dashboard: dashboardService,
		Notifier:  notifier,
		Logger:    logger,
	}
}

// Save captures the current headline metrics as a new snapshot
// Logic:
//  1. Compute the metrics bundle from the current state
//  2. Prepend the snapshot (storage is newest-first)
//  3. If the history was non-empty and the new net beats every recorded one, notify
func (s *SnapshotService) Save(ctx context.Context) (*domain.Snapshot, error) {
	var (
		saved        domain.Snapshot
		previousHigh decimal.Decimal
		isNewHigh    bool
	)

	err := s.Store.Update(func(st *domain.State) error {
		now := s.Dashboard.Now()
		bundle := dashboard.Compute(dashboard.Input{
			State:  *st,
			Market: s.marketData(),
			Now:    now,
		})

		saved = domain.Snapshot{
			ID:          domain.NewID(),
			Date:        now.UTC(),
			OverallNet:  domain.NewAmount(bundle.OverallNet),
			TotalAssets: domain.NewAmount(bundle.TotalAssets),
			TotalDebt:   domain.NewAmount(bundle.TotalDebt),
			Currency:    st.Currency,
		}

		if len(st.History) > 0 {
			previousHigh = st.History[0].OverallNet.Decimal
			for _, h := range st.History[1:] {
				previousHigh = decimal.Max(previousHigh, h.OverallNet.Decimal)
			}
			isNewHigh = bundle.OverallNet.GreaterThan(previousHigh)
		}

		st.History = append([]domain.Snapshot{saved}, st.History...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.WithFields(logrus.Fields{
		"id":          saved.ID,
		"overall_net": saved.OverallNet.String(),
	}).Info("Snapshot saved")

	if isNewHigh && s.Notifier != nil {
		if err := s.Notifier.NotifyAllTimeHigh(ctx, saved, domain.NewAmount(previousHigh)); err != nil {
			s.Logger.WithError(err).Warn("Failed to send all-time high notification")
		}
	}

	return &saved, nil
}

// Delete removes one snapshot by id; an absent id is a no-op
func (s *SnapshotService) Delete(ctx context.Context, id domain.ID) error {
	return s.Store.Update(func(st *domain.State) error {
		kept := st.History[:0]
		for _, h := range st.History {
			if h.ID != id {
				kept = append(kept, h)
			}
		}
		st.History = kept
		return nil
	})
}

// List returns the history ordered by date ascending
func (s *SnapshotService) List(ctx context.Context) ([]domain.Snapshot, error) {
	return domain.SortedByDate(s.Store.Snapshot().History), nil
}

func (s *SnapshotService) marketData() *domain.MarketSnapshot {
	if s.Dashboard.Market == nil {
		return nil
	}
	return s.Dashboard.Market.Latest()
}
