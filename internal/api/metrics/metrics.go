// Package metrics defines all custom Prometheus metrics for the catalog API.
// It is the single source of truth for metric names, labels, and help strings.
//
// Metrics are registered with the default registry on package init (promauto)
// and exposed on /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bookstore"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "invalid", "conflict", "unauthorized" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of registration and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// GuardRejectionsTotal counts requests rejected by the access guard.
// Label:
//   - reason: "no_token" or "not_authorized"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the bearer-token guard.",
	},
	[]string{"reason"},
)

// ── Book metrics ──────────────────────────────────────────────────────────────

// BookWritesTotal counts successful catalog writes.
// Label:
//   - op: "create", "update" or "delete"
var BookWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "book_writes_total",
		Help:      "Total number of successful book writes, by operation.",
	},
	[]string{"op"},
)

// BookListPageSize observes how many books each list call returned.
var BookListPageSize = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "book_list_page_size",
		Help:      "Number of books returned per list request.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
)

// BookCacheLookupsTotal counts single-book cache lookups.
// Label:
//   - result: "hit", "miss" or "error"
var BookCacheLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "book_cache_lookups_total",
		Help:      "Total number of book cache lookups, labelled by result.",
	},
	[]string{"result"},
)
