// Package metrics provides Prometheus metrics for the progress engine:
// log inserts, notification delivery, and scheduled-job runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Workout Logs ───────────────────────────────────────────────────────────

// LogsRecorded tracks accepted workout log inserts.
var LogsRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "seniorstrength",
	Name:      "logs_recorded_total",
	Help:      "Total workout logs recorded.",
})

// StreakReconciliations tracks full-history streak recomputations.
var StreakReconciliations = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "seniorstrength",
	Name:      "streak_reconciliations_total",
	Help:      "Total streak reconciliation runs.",
})

// ─── Notifications ──────────────────────────────────────────────────────────

// NotificationsSent tracks successful sends by channel.
var NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "seniorstrength",
	Name:      "notifications_sent_total",
	Help:      "Total notifications delivered.",
}, []string{"channel"})

// NotificationsFailed tracks failed sends by channel.
var NotificationsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "seniorstrength",
	Name:      "notifications_failed_total",
	Help:      "Total notification sends that failed.",
}, []string{"channel"})

// ─── Scheduled Jobs ─────────────────────────────────────────────────────────

// JobDuration tracks scheduled-job wall time by job name.
var JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "seniorstrength",
	Name:      "job_duration_seconds",
	Help:      "Scheduled job duration in seconds.",
	Buckets:   prometheus.DefBuckets,
}, []string{"job"})

// JobUsersProcessed tracks per-run processed-user counts by job name.
var JobUsersProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "seniorstrength",
	Name:      "job_users_processed_total",
	Help:      "Total users processed by scheduled jobs.",
}, []string{"job"})

// InactiveUsersFound tracks the inactive-candidate count of the latest scan.
var InactiveUsersFound = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "seniorstrength",
	Name:      "inactive_users_found",
	Help:      "Inactive users found in the most recent scan.",
})
