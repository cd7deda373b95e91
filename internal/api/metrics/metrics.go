// Package metrics defines and registers all custom Prometheus metrics for
// the urlmin services. It is the single source of truth for metric names,
// labels, and help strings; metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "urlmin"

// LinksMinifiedTotal counts minify operations.
// Label:
//   - outcome: "created" (new record minted) or "repeat" (existing pair re-minified)
var LinksMinifiedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "links_minified_total",
		Help:      "Total number of minify operations, by outcome (created/repeat).",
	},
	[]string{"outcome"},
)

// RedirectsTotal counts successfully served redirects.
var RedirectsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redirects_total",
		Help:      "Total number of short links successfully resolved and redirected.",
	},
)

// RedirectCacheTotal counts redirect cache lookups.
// Label:
//   - result: "hit" or "miss"
var RedirectCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "redirect_cache_total",
		Help:      "Total number of redirect cache lookups, by result (hit/miss).",
	},
	[]string{"result"},
)

// AuthDenialsTotal counts requests rejected by the authorization gate.
// Label:
//   - action: the guarded action that was denied
var AuthDenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denials_total",
		Help:      "Total number of requests denied by the authorization gate, by action.",
	},
	[]string{"action"},
)
