package middleware

import (
	"errors"
	"time"

	"github.com/iot-manager/console/pkg/navigation"
	"github.com/iot-manager/console/pkg/routetable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "console").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
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

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
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
		Namespace: "console",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Navigation status label values.
const (
	StatusOK         = "ok"
	StatusNotFound   = "not_found"
	StatusSuperseded = "superseded"
	StatusError      = "error"
)

// notFoundRoute labels navigations that matched no entry. Using the
// requested path instead would give the label unbounded cardinality.
const notFoundRoute = "<none>"

// Metrics holds the console's Prometheus collectors.
type Metrics struct {
	navigationsTotal   *prometheus.CounterVec
	navigationDuration *prometheus.HistogramVec
	notFoundTotal      prometheus.Counter
	supersededTotal    prometheus.Counter
	activeSessions     prometheus.Gauge
}

// NewMetrics registers the console metrics with the configured registry.
//
// Metrics collected:
//   - console_navigations_total: navigations by route name and status
//   - console_navigation_duration_seconds: resolve-and-mount duration by route
//   - console_route_not_found_total: navigations that matched no entry
//   - console_navigations_superseded_total: navigations dropped for a newer one
//   - console_active_sessions: open live navigation sessions
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total number of navigations by route and status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		navigationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation resolve and mount duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		notFoundTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "route_not_found_total",
			Help:        "Total number of navigations that matched no route",
			ConstLabels: config.ConstLabels,
		}),

		supersededTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_superseded_total",
			Help:        "Total number of navigations dropped in favour of a newer one",
			ConstLabels: config.ConstLabels,
		}),

		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open live navigation sessions",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// Middleware returns navigation middleware that records the metrics.
func (m *Metrics) Middleware() navigation.Middleware {
	return navigation.MiddlewareFunc(func(req *navigation.Request, next func() error) error {
		start := time.Now()
		err := next()

		route := req.Entry.Name
		if route == "" {
			route = notFoundRoute
		}
		status := Status(err)

		m.navigationDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.navigationsTotal.WithLabelValues(route, status).Inc()

		switch status {
		case StatusNotFound:
			m.notFoundTotal.Inc()
		case StatusSuperseded:
			m.supersededTotal.Inc()
		}
		return err
	})
}

// SessionOpened records a new live navigation session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed records the end of a live navigation session.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// Prometheus is a shorthand for NewMetrics(opts...).Middleware().
func Prometheus(opts ...MetricsOption) navigation.Middleware {
	return NewMetrics(opts...).Middleware()
}

// Status maps a navigation outcome to a low-cardinality label value.
func Status(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, routetable.ErrRouteNotFound):
		return StatusNotFound
	case errors.Is(err, navigation.ErrSuperseded):
		return StatusSuperseded
	default:
		return StatusError
	}
}
