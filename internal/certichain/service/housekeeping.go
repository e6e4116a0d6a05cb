package service

import (
	"context"
	"log/slog"
	"time"
)

// Purger removes expired records and reports how many it removed.
type Purger interface {
	Purge(ctx context.Context) (int, error)
}

// HousekeepingService periodically runs purgers, for example the in-memory
// challenge store. Shares are never purged here: their expiry is checked on
// read.
type HousekeepingService struct {
	Purgers  map[string]Purger
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService defaults interval to 10 minutes.
func NewHousekeepingService(logger *slog.Logger, interval time.Duration, purgers map[string]Purger) *HousekeepingService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return &HousekeepingService{
		Purgers:  purgers,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the worker in the background until Stop.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval, "purgers", len(s.Purgers))
}

// Stop blocks until an in-progress cleanup has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.RunOnce(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// RunOnce runs every purger once. A failing purger does not stop the others.
func (s *HousekeepingService) RunOnce(ctx context.Context) int {
	total := 0
	for name, p := range s.Purgers {
		n, err := p.Purge(ctx)
		if err != nil {
			s.Logger.Error("housekeeping purge failed", "purger", name, "error", err)
			continue
		}
		s.Logger.Debug("housekeeping purge", "purger", name, "removed", n)
		total += n
	}
	return total
}
