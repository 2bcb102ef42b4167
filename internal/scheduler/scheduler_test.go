package scheduler_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ratewatch/rate-notifier/internal/dto"
	"github.com/ratewatch/rate-notifier/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSyncSvc counts calls and can block until released to simulate a slow cycle.
type stubSyncSvc struct {
	calls   atomic.Int32
	err     error
	blockOn chan struct{}
}

func (s *stubSyncSvc) SyncRates(_ context.Context) (dto.SyncResult, error) {
	s.calls.Add(1)
	if s.blockOn != nil {
		<-s.blockOn
	}
	if s.err != nil {
		return dto.SyncResult{}, s.err
	}
	return dto.SyncResult{Created: 1}, nil
}

type stubNotificationSvc struct {
	calls atomic.Int32
}

func (s *stubNotificationSvc) Dispatch(_ context.Context) dto.NotificationOutcome {
	s.calls.Add(1)
	return dto.NotificationOutcome{Succeeded: 1}
}

func TestRunCycle_DispatchRunsAfterSuccessfulSync(t *testing.T) {
	rates := &stubSyncSvc{}
	notifications := &stubNotificationSvc{}
	s := scheduler.NewSyncScheduler(rates, notifications, time.Hour, nil, slog.Default())

	s.RunCycle(context.Background())

	assert.Equal(t, int32(1), rates.calls.Load())
	assert.Equal(t, int32(1), notifications.calls.Load())
}

func TestRunCycle_DispatchStillRunsWhenSyncFails(t *testing.T) {
	rates := &stubSyncSvc{err: errors.New("source unavailable")}
	notifications := &stubNotificationSvc{}
	s := scheduler.NewSyncScheduler(rates, notifications, time.Hour, nil, slog.Default())

	s.RunCycle(context.Background())

	assert.Equal(t, int32(1), rates.calls.Load())
	assert.Equal(t, int32(1), notifications.calls.Load(),
		"notifications must go out with the previously stored rates")
}

func TestRunCycle_OverlappingTriggerIsSkipped(t *testing.T) {
	release := make(chan struct{})
	rates := &stubSyncSvc{blockOn: release}
	notifications := &stubNotificationSvc{}
	s := scheduler.NewSyncScheduler(rates, notifications, time.Hour, nil, slog.Default())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.RunCycle(context.Background())
	}()

	// Wait until the first cycle is inside SyncRates before triggering again.
	require.Eventually(t, func() bool {
		return rates.calls.Load() == 1
	}, time.Second, 5*time.Millisecond)

	s.RunCycle(context.Background()) // returns immediately without a second sync

	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), rates.calls.Load())
	assert.Equal(t, int32(1), notifications.calls.Load())
}
