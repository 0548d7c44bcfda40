// Package metrics defines and registers all custom Prometheus metrics for
// the game-forum API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics use promauto, so importing this package registers them with the
// default Prometheus registry; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "gameforum"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "rate_limited", "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// TokenRefreshTotal counts refresh-token exchanges.
// Label:
//   - result: "success" or "denied"
var TokenRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "Total number of refresh-token exchanges, labelled by outcome.",
	},
	[]string{"result"},
)

// ── Entity metrics ────────────────────────────────────────────────────────────

// EntityWritesTotal counts successful create/update operations.
// Labels:
//   - entity: "user", "developer", "game", "comment"
//   - op: "create" or "update"
var EntityWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entity_writes_total",
		Help:      "Total number of successful entity writes, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// ── Cascade metrics ───────────────────────────────────────────────────────────

// CascadeDeletedTotal counts records removed by cascade deletions.
// Label:
//   - entity: the kind of record removed ("user", "developer", "game", "comment")
var CascadeDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_deleted_total",
		Help:      "Total number of records removed by cascade deletions, by entity kind.",
	},
	[]string{"entity"},
)

// CascadeFailuresTotal counts cascades that aborted before the parent was
// removed.
// Label:
//   - entity: the root entity of the failed cascade
var CascadeFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_failures_total",
		Help:      "Total number of cascade deletions that aborted mid-walk.",
	},
	[]string{"entity"},
)

// ObserveCascade records the outcome of one cascade on the counters above.
func ObserveCascade(users, developers, games, comments int64) {
	CascadeDeletedTotal.WithLabelValues("user").Add(float64(users))
	CascadeDeletedTotal.WithLabelValues("developer").Add(float64(developers))
	CascadeDeletedTotal.WithLabelValues("game").Add(float64(games))
	CascadeDeletedTotal.WithLabelValues("comment").Add(float64(comments))
}
