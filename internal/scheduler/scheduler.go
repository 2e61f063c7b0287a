package scheduler

import (
	"context"
	"log/slog"
	"time"

	"seconddraft/internal/domain"
)

// Syncer defines the interface for sync operations.
type Syncer interface {
	Sync(ctx context.Context) (*domain.SyncSummary, error)
}

// Scheduler runs a sync immediately and then on every tick. Runs never
// overlap: a tick that fires during a long run is dropped by the ticker.
type Scheduler struct {
	syncer   Syncer
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(syncer Syncer, interval, timeout time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		syncer:   syncer,
		interval: interval,
		timeout:  timeout,
		logger:   logger.With("component", "scheduler"),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	s.logger.Info("scheduler started", "interval", s.interval, "timeout", s.timeout)

	s.runSync(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runSync(ctx)
		}
	}
}

func (s *Scheduler) runSync(ctx context.Context) {
	syncCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		syncCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	summary, err := s.syncer.Sync(syncCtx)
	if err != nil {
		s.logger.Error("sync failed", "error", err)
		return
	}

	s.logger.Info("sync finished",
		"result", summary.Result,
		"collections", summary.Collections,
		"run_id", summary.RunID,
	)
}
