// Package metrics exposes Prometheus instrumentation for searches. A
// Registry implements astar.Observer:
//
//	reg := metrics.NewRegistry()
//	res, err := astar.Search(m, "A", []string{"U"}, astar.WithObserver(reg))
//	http.Handle("/metrics", promhttp.HandlerFor(reg.Prometheus(), promhttp.HandlerOpts{}))
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/placegrid/astar"
)

// Registry holds the search metrics on a private Prometheus registry.
type Registry struct {
	SearchesTotal  *prometheus.CounterVec
	SearchDuration prometheus.Histogram
	NodesExpanded  prometheus.Histogram
	PathCost       prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a Registry with every metric registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		SearchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "placegrid_searches_total",
				Help: "Total number of searches by outcome",
			},
			[]string{"outcome"},
		),
		SearchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "placegrid_search_duration_seconds",
			Help:    "Search wall-clock duration in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		NodesExpanded: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "placegrid_search_nodes_expanded",
			Help:    "Corners finalized per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		PathCost: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "placegrid_search_path_cost",
			Help:    "Total cost of found paths",
			Buckets: prometheus.LinearBuckets(0, 5, 20),
		}),
		registry: reg,
	}
}

// Prometheus returns the underlying registry for exposition.
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

// ObserveSearch records one finished search. Path cost is only observed for
// successful searches.
func (r *Registry) ObserveSearch(outcome string, expanded int, cost float64, elapsed time.Duration) {
	r.SearchesTotal.WithLabelValues(outcome).Inc()
	r.SearchDuration.Observe(elapsed.Seconds())
	r.NodesExpanded.Observe(float64(expanded))
	if outcome == astar.OutcomeFound {
		r.PathCost.Observe(cost)
	}
}
