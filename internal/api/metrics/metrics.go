// Package metrics defines and registers all custom Prometheus metrics for
// the catalog API. It is the single source of truth for metric names, labels,
// and help strings. Metrics self-register with the default registry via
// promauto at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// AuthAttemptsTotal counts authentication strategy executions.
// Labels:
//   - strategy: "register", "login", or "reset_password"
//   - outcome:  "accepted", "rejected", or "failed"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication strategy executions, by strategy and outcome.",
	},
	[]string{"strategy", "outcome"},
)

// ProductsCreatedTotal counts successfully created products.
// Label:
//   - owner: "admin" or "premium", the resolved owner kind
var ProductsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_created_total",
		Help:      "Total number of products added to the catalog, by resolved owner kind.",
	},
	[]string{"owner"},
)

// ProductsDeletedTotal counts delete attempts.
// Label:
//   - result: "deleted" or "forbidden"
var ProductsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "products_deleted_total",
		Help:      "Total number of product delete attempts, by authorization result.",
	},
	[]string{"result"},
)

// ListDurationSeconds measures catalog listing latency end-to-end.
// Label:
//   - view: "plain" for the DTO listing, "page" for the navigable page result
var ListDurationSeconds = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "list_duration_seconds",
		Help:      "Duration of catalog list queries from parse to DTO mapping.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"view"},
)
