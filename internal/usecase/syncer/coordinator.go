package syncer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/simaogato/finance-dashboard/internal/domain"
	"github.com/simaogato/finance-dashboard/internal/usecase/state"
)

// DefaultDebounce is the quiet period before a change is pushed remotely
const DefaultDebounce = 2 * time.Second

const pushTimeout = 15 * time.Second

// Coordinator keeps the local store, the device-local copy and the remote record in step.
// Every change is saved locally right away; remote pushes are debounced and fire-and-forget.
type Coordinator struct {
	Store    *state.Store
	Local    domain.LocalStateRepository
	Remote   domain.FinanceRecordRepository // nil disables remote sync
	Debounce time.Duration
	Logger   *logrus.Logger

	mu      sync.Mutex
	userID  string
	timer   *time.Timer
	armed   uint64 // timer generation; bumped on every cancel, a timer only fires in its own
	stopped bool
}

// NewCoordinator creates a Coordinator and subscribes it to store changes
func NewCoordinator(
	store *state.Store,
	local domain.LocalStateRepository,
	remote domain.FinanceRecordRepository,
	debounce time.Duration,
	logger *logrus.Logger,
) *Coordinator {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	c := &Coordinator{
		Store:    store,
		Local:    local,
		Remote:   remote,
		Debounce: debounce,
		Logger:   logger,
	}
	store.Subscribe(c.OnChange)
	return c
}

// Start reconciles with the remote record for userID. An empty userID means local-only mode.
// Logic:
//  1. Remote record found: it replaces the in-memory state wholesale and is saved locally ("cloud wins")
//  2. No remote record: the local state is pushed immediately to create it
//  3. Fetch failure: logged, the local state stays authoritative
func (c *Coordinator) Start(ctx context.Context, userID string) {
	c.mu.Lock()
	c.userID = userID
	c.mu.Unlock()

	if !c.remoteEnabled() {
		return
	}

	log := c.Logger.WithField("user_id", userID)

	record, err := c.Remote.Get(ctx, userID)
	if errors.Is(err, domain.ErrRecordNotFound) {
		log.Info("No remote record yet, pushing local state")
		if err := c.push(ctx); err != nil {
			log.WithError(err).Warn("Initial push failed")
		}
		return
	}
	if err != nil {
		log.WithError(err).Warn("Failed to fetch remote record, keeping local state")
		return
	}

	c.Store.Load(record.Data)
	if err := c.Local.Save(ctx, c.Store.Snapshot()); err != nil {
		log.WithError(err).Error("Failed to save remote state locally")
	}
	log.WithField("updated_at", record.UpdatedAt).Info("Loaded remote state")
}

// OnChange persists the state locally and (re)arms the debounced remote push.
// A change arriving before the timer fires resets it.
func (c *Coordinator) OnChange() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.Local.Save(context.Background(), c.Store.Snapshot()); err != nil {
		c.Logger.WithError(err).Error("Failed to save state locally")
	}

	if c.stopped || c.userID == "" || c.Remote == nil {
		return
	}

	c.cancelLocked()
	generation := c.armed
	c.timer = time.AfterFunc(c.Debounce, func() { c.fire(generation) })
}

// Flush cancels any pending timer and pushes right away
func (c *Coordinator) Flush(ctx context.Context) error {
	c.mu.Lock()
	c.cancelLocked()
	c.mu.Unlock()

	if !c.remoteEnabled() {
		return nil
	}
	return c.push(ctx)
}

// Stop cancels any pending push; later changes are only saved locally
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	c.cancelLocked()
}

// Pending reports whether a debounced push is scheduled
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timer != nil
}

// cancelLocked stops the pending timer. A callback that already started sees a newer
// generation and returns without pushing.
func (c *Coordinator) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.armed++
}

func (c *Coordinator) fire(generation uint64) {
	c.mu.Lock()
	if c.stopped || generation != c.armed {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()

	if err := c.push(ctx); err != nil {
		c.Logger.WithError(err).Warn("Remote push failed, will retry on next change")
	}
}

// push sends the state as it is now, never a copy captured when the change happened
func (c *Coordinator) push(ctx context.Context) error {
	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()

	record := &domain.FinanceRecord{
		UserID: userID,
		Data:   c.Store.Snapshot(),
	}
	if err := c.Remote.Upsert(ctx, record); err != nil {
		return err
	}

	c.Logger.WithFields(logrus.Fields{
		"user_id":    userID,
		"updated_at": record.UpdatedAt,
	}).Debug("Pushed state to remote")
	return nil
}

func (c *Coordinator) remoteEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID != "" && c.Remote != nil
}
