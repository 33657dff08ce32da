// Package metrics defines and registers the custom Prometheus metrics of the
// user registration service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "registration"

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts by outcome.
// Label:
//   - outcome: "accepted", "rejected", or "error" (a collaborator failed)
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// RejectionsTotal counts rejected registrations.
// Label:
//   - reason: the rejection cause (e.g. "underage", "credit_limit_too_low")
var RejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rejections_total",
		Help:      "Total number of rejected registrations, by reason.",
	},
	[]string{"reason"},
)

// ── Credit bureau metrics ─────────────────────────────────────────────────────

// CreditLookupDuration measures round trips to the credit bureau.
// Label:
//   - outcome: "ok" or "error"
var CreditLookupDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "credit_lookup_duration_seconds",
		Help:      "Duration of credit limit lookups against the credit bureau.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)

// CreditCacheTotal counts credit cache lookups.
// Label:
//   - result: "hit", "miss", or "error" (cache unavailable, bureau consulted)
var CreditCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_cache_total",
		Help:      "Total number of credit cache lookups, labelled by result (hit/miss/error).",
	},
	[]string{"result"},
)
