// Package middleware provides navigation middleware for the console.
//
// This package includes:
//   - Prometheus metrics for navigations and live sessions
//   - OpenTelemetry tracing, one span per navigation
//   - Structured logging of navigation outcomes
//
// All three plug into a navigator:
//
//	metrics := middleware.NewMetrics(middleware.WithNamespace("console"))
//	nav := navigation.New(table, host, renderer,
//	    navigation.WithMiddleware(
//	        middleware.OpenTelemetry(),
//	        metrics.Middleware(),
//	        middleware.Logging(logger),
//	    ),
//	)
//
// Expose the metrics with promhttp:
//
//	http.Handle("/metrics", promhttp.Handler())
//
// Navigation outcomes are reduced to a fixed set of status labels (see
// Status) so error text never reaches a metric label.
package middleware
