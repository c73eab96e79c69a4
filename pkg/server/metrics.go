package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "rhtml").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "rhtml",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus metrics for the page server.
//
// The request counter and duration histogram are labelled by route
// pattern, not by raw path, so parameterized routes stay at one series
// per route instead of one per visitor.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	routesLoaded    prometheus.Gauge
	reloadsTotal    prometheus.Counter
}

// NewMetrics registers and returns the server metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "requests_total",
			Help:        "Total page requests by route pattern and status",
			ConstLabels: config.ConstLabels,
		}, []string{"pattern", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Name:        "request_duration_seconds",
			Help:        "Page request duration in seconds by route pattern",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"pattern"}),

		routesLoaded: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Name:        "routes_loaded",
			Help:        "Number of routes in the current snapshot",
			ConstLabels: config.ConstLabels,
		}),

		reloadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Name:        "reloads_total",
			Help:        "Total number of template reload rebuilds",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// ObserveRequest records one dispatched request. The pattern for an
// unmatched request is "unmatched".
func (m *Metrics) ObserveRequest(pattern, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(pattern, status).Inc()
	m.requestDuration.WithLabelValues(pattern).Observe(duration.Seconds())
}

// SetRoutesLoaded records the route count of the active snapshot.
func (m *Metrics) SetRoutesLoaded(n int) {
	if m == nil {
		return
	}
	m.routesLoaded.Set(float64(n))
}

// RecordReload records one template rebuild.
func (m *Metrics) RecordReload() {
	if m == nil {
		return
	}
	m.reloadsTotal.Inc()
}
