package dashboard

import (
	"context"
	"time"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
)

// MarketSource supplies the last known market data, nil when none was ever loaded
type MarketSource interface {
	Latest() *domain.MarketSnapshot
}

// Dashboard is the full read model: raw state, derived metrics and the market data used
type Dashboard struct {
	State   domain.State           `json:"state"`
	Metrics Bundle                 `json:"metrics"`
	Market  *domain.MarketSnapshot `json:"market,omitempty"`
}

// DashboardService handles dashboard-related operations
type DashboardService struct {
	Store  *state.Store
	Market MarketSource
	Now    func() time.Time
}

// NewDashboardService creates a new DashboardService instance
func NewDashboardService(store *state.Store, market MarketSource) *DashboardService {
	return &DashboardService{
		Store:  store,
		Market: market,
		Now:    time.Now,
	}
}

// GetMetrics computes the metrics bundle from the current state.
// Nothing is cached: every call reflects the latest entities, history and market data.
func (s *DashboardService) GetMetrics(ctx context.Context) (*Bundle, error) {
	bundle := Compute(s.input(s.Store.Snapshot()))
	return &bundle, nil
}

// GetDashboard returns the state together with its derived metrics
func (s *DashboardService) GetDashboard(ctx context.Context) (*Dashboard, error) {
	st := s.Store.Snapshot()
	in := s.input(st)

	st.History = domain.SortedByDate(st.History)
	return &Dashboard{
		State:   st,
		Metrics: Compute(in),
		Market:  in.Market,
	}, nil
}

func (s *DashboardService) input(st domain.State) Input {
	var market *domain.MarketSnapshot
	if s.Market != nil {
		market = s.Market.Latest()
	}
	return Input{State: st, Market: market, Now: s.Now()}
}
