package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/backup"
	"github.com/simaogato/finance-dashboard/internal/usecase/currency"
	"github.com/simaogato/finance-dashboard/internal/usecase/dashboard"
	"github.com/simaogato/finance-dashboard/internal/usecase/entity"
	"github.com/simaogato/finance-dashboard/internal/usecase/expense"
	"github.com/simaogato/finance-dashboard/internal/usecase/investment"
	"github.com/simaogato/finance-dashboard/internal/usecase/snapshot"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
	"github.com/simaogato/finance-dashboard/internal/usecase/syncer"
)

// LocalFactory returns the device-local store of an identity ("" is the anonymous profile)
type LocalFactory func(userID string) domain.LocalStateRepository

// Config wires the collaborators shared by every session
type Config struct {
	Local        LocalFactory
	Remote       domain.FinanceRecordRepository // nil: local-only
	Market       dashboard.MarketSource
	Notifier     domain.Notifier
	Transactions domain.TransactionSource
	Debounce     time.Duration
	Logger       *logrus.Logger
}

// Session is the working set of one identity: its state store, sync coordinator and services
type Session struct {
	UserID      string
	Store       *state.Store
	Coordinator *syncer.Coordinator

	Entities   *entity.EntityService
	Dashboard  *dashboard.DashboardService
	Snapshots  *snapshot.SnapshotService
	Currency   *currency.CurrencyService
	Investment *investment.InvestmentService
	Backup     *backup.BackupService
	Expenses   *expense.ExpenseService
}

type entry struct {
	once    sync.Once
	session *Session
	err     error
}

// Manager hands out one Session per identity, opening it on first access
type Manager struct {
	cfg Config

	mu       sync.Mutex
	sessions map[string]*entry
}

// NewManager creates a new Manager instance
func NewManager(cfg Config) *Manager {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	return &Manager{
		cfg:      cfg,
		sessions: make(map[string]*entry),
	}
}

// Get returns the session of userID, opening it if needed.
// Concurrent first calls for the same identity open it once.
func (m *Manager) Get(ctx context.Context, userID string) (*Session, error) {
	m.mu.Lock()
	e, ok := m.sessions[userID]
	if !ok {
		e = &entry{}
		m.sessions[userID] = e
	}
	m.mu.Unlock()

	e.once.Do(func() {
		e.session, e.err = m.open(ctx, userID)
	})

	if e.err != nil {
		// allow a later retry
		m.mu.Lock()
		if m.sessions[userID] == e {
			delete(m.sessions, userID)
		}
		m.mu.Unlock()
		return nil, e.err
	}
	return e.session, nil
}

// Close pushes pending changes of every session and stops their coordinators
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	entries := make([]*entry, 0, len(m.sessions))
	for _, e := range m.sessions {
		entries = append(entries, e)
	}
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range entries {
		if e.session == nil {
			continue
		}
		c := e.session.Coordinator
		if c.Pending() {
			if err := c.Flush(ctx); err != nil {
				m.cfg.Logger.WithFields(logrus.Fields{
					"user_id": e.session.UserID,
					"err":     err,
				}).Warn("Failed to flush pending changes")
			}
		}
		c.Stop()
	}
}

// open logic:
//  1. Load the identity's local state (per-key fallback happens in the local store)
//  2. Build the in-memory store and subscribe the coordinator
//  3. Reconcile with the remote record when signed in
func (m *Manager) open(ctx context.Context, userID string) (*Session, error) {
	log := m.cfg.Logger.WithField("user_id", userID)

	local := m.cfg.Local(userID)
	initial, err := local.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load local state: %w", err)
	}

	store := state.NewStore(initial)
	coordinator := syncer.NewCoordinator(store, local, m.cfg.Remote, m.cfg.Debounce, m.cfg.Logger)
	coordinator.Start(ctx, userID)

	dashboardService := dashboard.NewDashboardService(store, m.cfg.Market)
	s := &Session{
		UserID:      userID,
		Store:       store,
		Coordinator: coordinator,
		Entities:    entity.NewEntityService(store),
		Dashboard:   dashboardService,
		Snapshots:   snapshot.NewSnapshotService(store, dashboardService, m.cfg.Notifier, m.cfg.Logger),
		Currency:    currency.NewCurrencyService(store),
		Investment:  investment.NewInvestmentService(store, dashboardService),
		Backup:      backup.NewBackupService(store, m.cfg.Logger),
		Expenses:    expense.NewExpenseService(m.cfg.Transactions),
	}

	log.Info("Session opened")
	return s, nil
}
