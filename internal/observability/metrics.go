package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// observation service.
type Metrics struct {
	RefreshDuration       prometheus.Histogram
	ObservationsPublished prometheus.Counter
	PublishErrors         prometheus.Counter
	PipelineRunning       prometheus.Gauge
	LastObservationTime   prometheus.Gauge

	// Feed fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: feed={tabular,narrative}, outcome={success,not_modified,error}
	FetchDuration *prometheus.HistogramVec // labels: feed={tabular,narrative}

	// Parse metrics.
	ParseResults *prometheus.CounterVec // labels: source={tabular,narrative,none}, outcome={success,failure}
	Fallbacks    prometheus.Counter
	UnknownUnits prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		RefreshDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "marine_obs",
			Name:      "refresh_duration_seconds",
			Help:      "Duration of a complete fetch-parse-publish refresh cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_obs",
			Name:      "observations_published_total",
			Help:      "Total observations written to the sink topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_obs",
			Name:      "publish_errors_total",
			Help:      "Total failed writes to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "marine_obs",
			Name:      "pipeline_running",
			Help:      "1 when the poll loop is active, 0 when shut down.",
		}),
		LastObservationTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "marine_obs",
			Name:      "last_observation_timestamp_seconds",
			Help:      "Unix time of the most recently ingested observation.",
		}),
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_obs",
			Name:      "fetch_requests_total",
			Help:      "Feed fetch attempts by feed and outcome.",
		}, []string{"feed", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "marine_obs",
			Name:      "fetch_duration_seconds",
			Help:      "Feed fetch request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"feed"}),
		ParseResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "marine_obs",
			Name:      "parse_results_total",
			Help:      "Parse attempts by chosen source and outcome.",
		}, []string{"source", "outcome"}),
		Fallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_obs",
			Name:      "fallbacks_total",
			Help:      "Total refreshes where the tabular feed was rejected and the narrative report was used.",
		}),
		UnknownUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "marine_obs",
			Name:      "unknown_units_total",
			Help:      "Total readings whose unit was not recognized and was passed through unconverted.",
		}),
	}

	prometheus.MustRegister(
		m.RefreshDuration,
		m.ObservationsPublished,
		m.PublishErrors,
		m.PipelineRunning,
		m.LastObservationTime,
		m.FetchRequests,
		m.FetchDuration,
		m.ParseResults,
		m.Fallbacks,
		m.UnknownUnits,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		RefreshDuration:       prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "marine_obs", Name: "refresh_duration_seconds"}),
		ObservationsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_obs", Name: "observations_published_total"}),
		PublishErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_obs", Name: "publish_errors_total"}),
		PipelineRunning:       prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "marine_obs", Name: "pipeline_running"}),
		LastObservationTime:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "marine_obs", Name: "last_observation_timestamp_seconds"}),
		FetchRequests:         prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_obs", Name: "fetch_requests_total"}, []string{"feed", "outcome"}),
		FetchDuration:         prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "marine_obs", Name: "fetch_duration_seconds"}, []string{"feed"}),
		ParseResults:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "marine_obs", Name: "parse_results_total"}, []string{"source", "outcome"}),
		Fallbacks:             prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_obs", Name: "fallbacks_total"}),
		UnknownUnits:          prometheus.NewCounter(prometheus.CounterOpts{Namespace: "marine_obs", Name: "unknown_units_total"}),
	}
}
