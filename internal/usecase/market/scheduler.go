package market

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSchedule refreshes market data every 15 minutes
const DefaultSchedule = "@every 15m"

const refreshTimeout = 30 * time.Second

// Scheduler runs MarketService.Refresh periodically, independent of any request
type Scheduler struct {
	cron    *cron.Cron
	service *MarketService
	logger  *logrus.Logger
}

// NewScheduler creates a Scheduler for the given cron spec
func NewScheduler(service *MarketService, spec string, logger *logrus.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSchedule
	}

	s := &Scheduler{
		cron:    cron.New(),
		service: service,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return nil, fmt.Errorf("invalid market schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start performs one refresh right away and then runs on schedule
func (s *Scheduler) Start() {
	go s.run()
	s.cron.Start()
	s.logger.Info("Market refresh scheduler started")
}

// Stop halts the schedule and waits for a running refresh to finish
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	// errors are already logged by the service
	_, _ = s.service.Refresh(ctx)
}
