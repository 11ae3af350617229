// Package metrics defines and registers all custom Prometheus metrics for the
// posts gateway. It is the single source of truth for metric names, labels,
// and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "posts_gateway"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success" or "conflict"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, labelled by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts bearer token checks at the request guard.
// Label:
//   - result: "ok", "absent", "malformed", "expired", or "bad_signature"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of bearer token verifications, labelled by outcome.",
	},
	[]string{"result"},
)

// ── Proxy metrics ─────────────────────────────────────────────────────────────

// UpstreamRequestDuration measures latency of calls to the upstream posts API.
// Label:
//   - operation: "list", "get", "create", "update", or "delete"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests forwarded to the upstream posts API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// PostCacheTotal counts list-cache lookups.
// Label:
//   - result: "hit" or "miss"
var PostCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_cache_total",
		Help:      "Total number of post list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
