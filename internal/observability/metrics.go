package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// insight service.
type Metrics struct {
	QueriesTotal     *prometheus.CounterVec // labels: outcome={ok,bad_request,no_data,degenerate,upstream_error,error}
	AnalysisDuration prometheus.Histogram
	SampleSetSize    prometheus.Histogram

	// Upstream fetch metrics.
	FetchDuration prometheus.Histogram
	FetchErrors   prometheus.Counter
	SeriesCache   *prometheus.CounterVec // labels: result={hit,miss}

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,not_found,error}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.QueriesTotal,
		m.AnalysisDuration,
		m.SampleSetSize,
		m.FetchDuration,
		m.FetchErrors,
		m.SeriesCache,
		m.GeocodeRequests,
		m.GeocodeCache,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_insight",
			Name:      "queries_total",
			Help:      "Analysis queries by outcome.",
		}, []string{"outcome"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_insight",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of a complete geocode-fetch-analyze query.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		SampleSetSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_insight",
			Name:      "sample_set_size",
			Help:      "Number of yearly samples selected per query.",
			Buckets:   []float64{10, 15, 20, 25, 30, 35, 40, 50},
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "climate_insight",
			Name:      "power_fetch_duration_seconds",
			Help:      "NASA POWER API request duration in seconds.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		FetchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "climate_insight",
			Name:      "power_fetch_errors_total",
			Help:      "Total NASA POWER fetch failures.",
		}),
		SeriesCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_insight",
			Name:      "series_cache_total",
			Help:      "Daily-series cache lookups by result.",
		}, []string{"result"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_insight",
			Name:      "geocode_requests_total",
			Help:      "Geocoding requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_insight",
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
	}
}
