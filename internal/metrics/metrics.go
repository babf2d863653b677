// Package metrics exposes the service's operational counters through
// prometheus/client_golang, replacing the teacher's hand-rolled
// CustomMetric/AggregatedMetric bookkeeping (services/metrics.go) with the
// registry the rest of the ecosystem already scrapes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the packing pipeline touches.
type Metrics struct {
	JobsProcessed    *prometheus.CounterVec
	SolveDuration    prometheus.Histogram
	PalletsPerJob    prometheus.Histogram
	ItemsUnplaced    prometheus.Counter
	QueueDepth       prometheus.Gauge
	HTTPRequestTotal *prometheus.CounterVec
}

// New registers every collector against reg and returns the handle used
// throughout the service. Call this once at startup.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		JobsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "packer_jobs_processed_total",
			Help: "Number of pack jobs processed, labeled by outcome (ready, failed).",
		}, []string{"outcome"}),

		SolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "packer_solve_duration_seconds",
			Help:    "Wall-clock duration of a single SolvePallet call.",
			Buckets: prometheus.DefBuckets,
		}),

		PalletsPerJob: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "packer_pallets_per_job",
			Help:    "Number of pallets produced per successful pack job.",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),

		ItemsUnplaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "packer_items_unplaced_total",
			Help: "Total items that could not be placed on any pallet across all jobs.",
		}),

		QueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "packer_queue_depth",
			Help: "Current number of order ids waiting in the job queue.",
		}),

		HTTPRequestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "packer_http_requests_total",
			Help: "HTTP requests served, labeled by route and status class.",
		}, []string{"route", "status_class"}),
	}
}
