// Package metrics defines and registers all custom Prometheus metrics for the
// blog editor API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init and
// are served by the echoprometheus handler mounted at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blog"

// ── Post metrics ──────────────────────────────────────────────────────────────

// PostsCreatedTotal counts newly created posts.
// Label:
//   - status: initial status ("draft" or "published")
var PostsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "posts_created_total",
		Help:      "Total number of posts created, by initial status.",
	},
	[]string{"status"},
)

// PostMutationsTotal counts update and delete outcomes.
// Labels:
//   - operation: "update" or "delete"
//   - result: "ok", "noop", "not_found" or "error"
var PostMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_mutations_total",
		Help:      "Total number of post updates and deletes, by outcome.",
	},
	[]string{"operation", "result"},
)

// PostContentDecodeFailuresTotal counts stored contents that could not be
// decoded and were replaced by an empty document on read.
var PostContentDecodeFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "post_content_decode_failures_total",
		Help:      "Stored post contents replaced by an empty document because they were not valid JSON.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", "throttled" or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── AI metrics ────────────────────────────────────────────────────────────────

// AIGenerationsTotal counts generation requests.
// Labels:
//   - prompt_type: "summary", "grammar" or "passthrough"
//   - result: "ok", "mock" or "error"
var AIGenerationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ai_generations_total",
		Help:      "Total number of AI generation requests, by prompt type and result.",
	},
	[]string{"prompt_type", "result"},
)

// AIGenerationDuration measures provider round-trip time.
var AIGenerationDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ai_generation_duration_seconds",
		Help:      "Duration of calls to the AI provider.",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
)
