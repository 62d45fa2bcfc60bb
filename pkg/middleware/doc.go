// Package middleware provides observability middleware for the navigation
// router.
//
// This package includes:
//   - Prometheus metrics middleware
//   - OpenTelemetry tracing middleware
//   - slog-based navigation logging
//
// All middleware sits in the router's chain between route resolution and
// the route handler:
//
//	r := router.New(router.WithHistory(adapter))
//	r.Use(
//	    middleware.Logging(nil),
//	    middleware.Prometheus(middleware.WithNamespace("myapp")),
//	    middleware.OpenTelemetry(),
//	)
//
// # Prometheus metrics
//
// The Prometheus middleware collects per-navigation metrics:
//   - wayfinder_navigations_total: navigations by route and status
//   - wayfinder_navigation_duration_seconds: handler duration histogram
//   - wayfinder_navigation_errors_total: errors by route and category
//
// Expose them the usual way:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Metric labels use the matched route template, not the concrete path, so
// parameterized routes do not explode label cardinality.
//
// # OpenTelemetry
//
// The OpenTelemetry middleware starts a span per navigation using the
// global tracer provider. Handlers can attach attributes to the active
// span via middleware.SpanFromContext(ctx).
package middleware
