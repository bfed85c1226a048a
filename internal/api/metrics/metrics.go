// Package metrics defines and registers all custom Prometheus metrics for the
// farm-records API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "farm"

// ── Authentication ───────────────────────────────────────────────────────────

// AuthenticationFailuresTotal counts bearer tokens that did not produce a
// principal.
// Label:
//   - reason: "malformed", "invalid_signature", "expired", "account_not_found",
//     "account_deleted" or "error"
var AuthenticationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authentication_failures_total",
		Help:      "Total number of bearer tokens rejected by the authentication middleware.",
	},
	[]string{"reason"},
)

// LoginAttemptsTotal counts login requests.
// Label:
//   - result: "success", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// TokensIssuedTotal counts signed tokens.
// Label:
//   - kind: "access" or "refresh"
var TokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tokens_issued_total",
		Help:      "Total number of tokens issued, by kind.",
	},
	[]string{"kind"},
)

// ── Authorization ────────────────────────────────────────────────────────────

// AuthorizationDenialsTotal counts requests stopped by a guard.
// Labels:
//   - guard: "authenticated", "role" or "owner"
//   - resource: the guarded resource type (e.g. "farm"), or "route"
var AuthorizationDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denials_total",
		Help:      "Total number of requests denied by an authorization guard.",
	},
	[]string{"guard", "resource"},
)

// OwnerLookupDuration measures how long owner lookups take.
// Label:
//   - resource: the guarded resource type
var OwnerLookupDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "owner_lookup_duration_seconds",
		Help:      "Duration of resource owner lookups performed by the ownership guard.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource"},
)

// ── Audit ────────────────────────────────────────────────────────────────────

// AuditQueueDepth tracks the number of audit events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditEventsDroppedTotal counts audit events discarded because a worker
// queue was full.
var AuditEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_dropped_total",
		Help:      "Total number of audit events dropped because the dispatcher queue was full.",
	},
)
