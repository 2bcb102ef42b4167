package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SyncMetrics holds all metrics for the rate synchronization and notification pipeline.
type SyncMetrics struct {
	SyncCyclesTotal     prometheus.CounterVec
	SyncRecordsTotal    prometheus.CounterVec
	SyncCycleDuration   prometheus.Histogram
	NotificationsTotal  prometheus.CounterVec
	ActiveSubscriptions prometheus.Gauge
}

// NewSyncMetrics registers and returns the pipeline metrics.
func NewSyncMetrics() *SyncMetrics {
	return &SyncMetrics{
		SyncCyclesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_sync_cycles_total",
				Help: "Number of sync cycles, by outcome of the fetch stage",
			},
			[]string{"status"},
		),

		SyncRecordsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_sync_records_total",
				Help: "Number of snapshot records processed, by reconciliation result",
			},
			[]string{"result"},
		),

		SyncCycleDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rate_sync_cycle_duration_seconds",
				Help:    "Duration of one full fetch-reconcile-notify cycle",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),

		NotificationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_notifications_total",
				Help: "Number of per-recipient delivery attempts, by status",
			},
			[]string{"status"},
		),

		ActiveSubscriptions: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "rate_active_subscriptions",
				Help: "Number of active subscriptions seen by the last dispatch run",
			},
		),
	}
}

// RecordCycle records the outcome and duration of one full cycle.
func (m *SyncMetrics) RecordCycle(status string, durationSeconds float64) {
	m.SyncCyclesTotal.WithLabelValues(status).Inc()
	m.SyncCycleDuration.Observe(durationSeconds)
}

// RecordSyncResult records per-record reconciliation counts for one sync run.
func (m *SyncMetrics) RecordSyncResult(created, updated, skipped int) {
	m.SyncRecordsTotal.WithLabelValues("created").Add(float64(created))
	m.SyncRecordsTotal.WithLabelValues("updated").Add(float64(updated))
	m.SyncRecordsTotal.WithLabelValues("skipped").Add(float64(skipped))
}

// RecordDispatch records per-recipient delivery counts for one dispatch run.
func (m *SyncMetrics) RecordDispatch(succeeded, failed, activeSubscriptions int) {
	m.NotificationsTotal.WithLabelValues("success").Add(float64(succeeded))
	m.NotificationsTotal.WithLabelValues("failure").Add(float64(failed))
	m.ActiveSubscriptions.Set(float64(activeSubscriptions))
}
