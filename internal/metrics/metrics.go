package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "vendorwize"

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	HTTPRequests *prometheus.CounterVec   // labels: method, route, status
	HTTPDuration *prometheus.HistogramVec // labels: method, route

	Searches      prometheus.Counter
	SearchResults prometheus.Histogram

	ImportRecords   *prometheus.CounterVec // labels: outcome={imported,failed}
	ImportBatchSize prometheus.Histogram

	PublishErrors prometheus.Counter
}

// New creates the collectors and registers them with reg.
// Tests pass prometheus.NewRegistry() to stay isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_searches_total",
			Help:      "Nearby event searches executed.",
		}),
		SearchResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_search_results",
			Help:      "Number of events returned per search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
		ImportRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_records_total",
			Help:      "Imported records by outcome.",
		}, []string{"outcome"}),
		ImportBatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "import_batch_size",
			Help:      "Number of records per import request.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "change_feed_publish_errors_total",
			Help:      "Failed change feed publishes.",
		}),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.HTTPDuration,
		m.Searches,
		m.SearchResults,
		m.ImportRecords,
		m.ImportBatchSize,
		m.PublishErrors,
	)

	return m
}
