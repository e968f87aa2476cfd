package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments exported on /metrics.
type Metrics struct {
	Registry *prometheus.Registry

	// RequestsTotal counts HTTP requests by route and status class.
	RequestsTotal *prometheus.CounterVec

	// DatasetLoads counts dataset loads by outcome (ok, not_found,
	// parse_error).
	DatasetLoads *prometheus.CounterVec

	// DatasetRows records the canonical row count of the last load.
	DatasetRows prometheus.Gauge

	// MetricDuration observes per-routine computation time.
	MetricDuration *prometheus.HistogramVec
}

// NewMetrics registers the dashboard instruments on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,
		RequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retaildash_http_requests_total",
			Help: "HTTP requests served, by route and status class.",
		}, []string{"route", "status"}),
		DatasetLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "retaildash_dataset_loads_total",
			Help: "Dataset load attempts, by outcome.",
		}, []string{"outcome"}),
		DatasetRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "retaildash_dataset_rows",
			Help: "Row count of the most recently loaded canonical table.",
		}),
		MetricDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "retaildash_metric_duration_seconds",
			Help:    "Wall time spent computing each metric routine.",
			Buckets: prometheus.DefBuckets,
		}, []string{"routine"}),
	}
}
