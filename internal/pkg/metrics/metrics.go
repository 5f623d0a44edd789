// Package metrics defines and registers all custom Prometheus metrics for the
// QuickDesk API. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "quickdesk"

// ── Change pipeline metrics ───────────────────────────────────────────────────

// ChangesProcessedTotal counts ticket changes that completed processing.
// Label:
//   - kind: the change kind (e.g. "created", "replied")
var ChangesProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "changes_processed_total",
		Help:      "Total number of ticket changes successfully processed.",
	},
	[]string{"kind"},
)

// ChangesErrorsTotal counts changes that failed processing.
// Label:
//   - reason: short description of the failure (e.g. "publish_failed", "audit_failed")
var ChangesErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "changes_errors_total",
		Help:      "Total number of ticket changes that failed a processing step.",
	},
	[]string{"reason"},
)

// ChangesDedupTotal counts deduplication decisions.
// Label:
//   - result: "hit" (duplicate, skipped), "miss" (new change) or "error"
var ChangesDedupTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "changes_dedup_total",
		Help:      "Total number of deduplication checks, labelled by result.",
	},
	[]string{"result"},
)

// ChangesQueueDepth tracks the number of changes waiting in each worker channel.
var ChangesQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "changes_queue_depth",
		Help:      "Current number of changes pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ChangeProcessingDuration measures dequeue-to-publish time of one change.
var ChangeProcessingDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "change_processing_duration_seconds",
		Help:      "Duration of change processing from dequeue to publish.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// ── Ticket metrics ────────────────────────────────────────────────────────────

// TicketsCreatedTotal counts newly created tickets by priority.
var TicketsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets created, by priority.",
	},
	[]string{"priority"},
)

// TicketMutationsTotal counts successful ticket writes by change kind.
var TicketMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_mutations_total",
		Help:      "Total number of ticket writes, by change kind.",
	},
	[]string{"kind"},
)

// ── Session and live metrics ──────────────────────────────────────────────────

// SessionRoleFallbackTotal counts sessions that fell back to the lowest role.
// Label:
//   - reason: "not_found", "lookup_error" or "unknown_role"
var SessionRoleFallbackTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_role_fallback_total",
		Help:      "Total number of sessions resolved with the fallback role.",
	},
	[]string{"reason"},
)

// LiveSubscribers is the number of open live ticket streams.
var LiveSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "live_subscribers",
		Help:      "Current number of open live ticket list streams.",
	},
)
