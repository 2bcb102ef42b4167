package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	portssvc "github.com/ratewatch/rate-notifier/internal/core/ports/services"
	"github.com/ratewatch/rate-notifier/internal/platform/metrics"
)

// SyncScheduler runs the fetch-reconcile-notify cycle once at startup and then on
// a fixed interval. Cycles never overlap: a trigger arriving while a cycle is
// still running is skipped. No error escapes a cycle; the schedule survives any
// single cycle's failure.
type SyncScheduler struct {
	rates         portssvc.RateSyncSvc
	notifications portssvc.NotificationSvcFacade
	interval      time.Duration
	metrics       *metrics.SyncMetrics
	logger        *slog.Logger
	running       atomic.Bool
}

// NewSyncScheduler creates a new SyncScheduler. Metrics may be nil.
func NewSyncScheduler(
	rates portssvc.RateSyncSvc,
	notifications portssvc.NotificationSvcFacade,
	interval time.Duration,
	m *metrics.SyncMetrics,
	logger *slog.Logger,
) *SyncScheduler {
	return &SyncScheduler{
		rates:         rates,
		notifications: notifications,
		interval:      interval,
		metrics:       m,
		logger:        logger,
	}
}

// Start runs one cycle immediately, then one per tick until ctx is cancelled.
// It blocks; callers run it on its own goroutine.
func (s *SyncScheduler) Start(ctx context.Context) {
	s.logger.Info("Starting sync scheduler", slog.Duration("interval", s.interval))

	s.RunCycle(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Stopping sync scheduler")
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

// RunCycle executes one full cycle: synchronize, then dispatch notifications.
// Dispatch always runs, even when synchronization fails — it reads the latest
// stored rates, so subscribers simply receive the previous cycle's data.
func (s *SyncScheduler) RunCycle(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Previous sync cycle still running, skipping this trigger")
		return
	}
	defer s.running.Store(false)

	start := time.Now()
	status := "ok"

	result, err := s.rates.SyncRates(ctx)
	if err != nil {
		status = "sync_failed"
		s.logger.Error("Rate synchronization failed", slog.String("error", err.Error()))
	} else if s.metrics != nil {
		s.metrics.RecordSyncResult(result.Created, result.Updated, result.Skipped)
	}

	outcome := s.notifications.Dispatch(ctx)

	if s.metrics != nil {
		s.metrics.RecordDispatch(outcome.Succeeded, outcome.Failed, outcome.Succeeded+outcome.Failed)
		s.metrics.RecordCycle(status, time.Since(start).Seconds())
	}

	s.logger.Info("Sync cycle completed",
		slog.String("status", status),
		slog.Int("rates_created", result.Created),
		slog.Int("rates_updated", result.Updated),
		slog.Int("rates_skipped", result.Skipped),
		slog.Int("notified", outcome.Succeeded),
		slog.Int("notify_failed", outcome.Failed),
		slog.Duration("duration", time.Since(start)),
	)
}
