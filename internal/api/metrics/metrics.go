// Package metrics defines the custom Prometheus metrics of the WOIYA
// marketplace API. It is the single source of truth for metric names, labels
// and help strings.
//
// Collectors are created with promauto and live in the default registry, so
// importing the package is enough to expose them on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "woiya"

// ── Job metrics ───────────────────────────────────────────────────────────────

// JobsCreatedTotal counts posted jobs.
// Label:
//   - category: the job category (e.g. "perbaikan_rumah")
var JobsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "jobs_created_total",
		Help:      "Total number of jobs created, by category.",
	},
	[]string{"category"},
)

// BidsPlacedTotal counts accepted bids.
var BidsPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_placed_total",
		Help:      "Total number of bids placed.",
	},
)

// BidsSelectedTotal counts bid selections, re-selections included.
var BidsSelectedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bids_selected_total",
		Help:      "Total number of bid selections.",
	},
)

// ── Payment metrics ───────────────────────────────────────────────────────────

// PaymentTransitionsTotal counts payments entering a status.
// Label:
//   - status: "pending" on creation, then "held_in_escrow", "released" or "refunded"
var PaymentTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_transitions_total",
		Help:      "Total number of payment status transitions, by resulting status.",
	},
	[]string{"status"},
)

// GatewayCallDuration measures simulated payment gateway latency.
// Label:
//   - op: "initiate", "status" or "refund"
var GatewayCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_call_duration_seconds",
		Help:      "Duration of payment gateway calls.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2, 5},
	},
	[]string{"op"},
)

// ObserveGateway records one gateway call. Its signature matches gateway.ObserveFunc.
func ObserveGateway(op string, elapsed time.Duration) {
	GatewayCallDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ── Social metrics ────────────────────────────────────────────────────────────

// MessagesSentTotal counts delivered direct messages.
var MessagesSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of direct messages sent.",
	},
)

// RatingsSubmittedTotal counts stored ratings.
// Label:
//   - score: "1" through "5"
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of ratings submitted, by score.",
	},
	[]string{"score"},
)

// ── Identity metrics ──────────────────────────────────────────────────────────

// RegistrationsTotal counts new accounts.
// Label:
//   - role: "pencari_jasa" or "penyedia_jasa"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registered accounts, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
