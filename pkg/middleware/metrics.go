package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/wayfinder-dev/wayfinder/pkg/router"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "wayfinder").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for navigation duration.
	// Default: prometheus.DefBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
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

// WithBuckets sets the duration histogram buckets.
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
		Namespace: "wayfinder",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

type navMetrics struct {
	navigationsTotal *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	errorsTotal      *prometheus.CounterVec
}

func newNavMetrics(config MetricsConfig) *navMetrics {
	factory := promauto.With(config.Registry)

	return &navMetrics{
		navigationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigations_total",
			Help:        "Total navigations by route and status",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "status"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_duration_seconds",
			Help:        "Navigation pipeline duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		errorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "navigation_errors_total",
			Help:        "Total navigation errors by route and category",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "error_type"}),
	}
}

// Prometheus creates middleware that records a sample per completed
// navigation attempt. Labels use the matched route template to keep
// cardinality bounded.
func Prometheus(opts ...MetricsOption) router.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}

	m := newNavMetrics(config)

	return router.MiddlewareFunc(func(ctx *router.Context, next func() error) error {
		route := routeLabel(ctx)

		start := time.Now()
		err := next()
		m.duration.WithLabelValues(route).Observe(time.Since(start).Seconds())

		status := "success"
		if err != nil {
			status = "error"
			m.errorsTotal.WithLabelValues(route, categorizeError(err)).Inc()
		}
		m.navigationsTotal.WithLabelValues(route, status).Inc()

		return err
	})
}

func routeLabel(ctx *router.Context) string {
	if ctx.Route != nil {
		return ctx.Route.Template()
	}
	return "unmatched"
}

// categorizeError maps an error to a bounded label value so error messages
// never become label cardinality.
func categorizeError(err error) string {
	var contract *router.MiddlewareContractError
	if errors.As(err, &contract) {
		return "middleware_contract"
	}
	if errors.Is(err, context.Canceled) {
		return "cancelled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	return "handler"
}
