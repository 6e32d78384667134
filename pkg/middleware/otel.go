package middleware

import (
	"context"

	"github.com/iot-manager/console/pkg/navigation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for the console.
const defaultTracerName = "console"

// SpanName is the name of the span recorded for each navigation.
const SpanName = "console.navigate"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "console").
	TracerName string

	// TracerProvider supplies the tracer. If nil, the global provider is used.
	TracerProvider trace.TracerProvider

	// Filter determines which navigations to trace.
	// If nil, all navigations are traced.
	Filter func(req *navigation.Request) bool
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) OTelOption {
	return func(c *OTelConfig) {
		c.TracerProvider = tp
	}
}

// WithNavigationFilter sets a filter function for navigations.
func WithNavigationFilter(filter func(req *navigation.Request) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// OpenTelemetry creates middleware that records a span per navigation.
//
// The span carries the requested path, the navigation kind and ticket, and
// once resolved the matched route. It is attached to req.Ctx so the
// renderer and any later middleware run inside it. Not-found and other
// failures set the span status to error.
func OpenTelemetry(opts ...OTelOption) navigation.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}

	tp := config.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	tracer := tp.Tracer(config.TracerName)

	return navigation.MiddlewareFunc(func(req *navigation.Request, next func() error) error {
		if config.Filter != nil && !config.Filter(req) {
			return next()
		}

		parent := req.Ctx
		if parent == nil {
			parent = context.Background()
		}
		spanCtx, span := tracer.Start(parent, SpanName,
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(
				attribute.String("console.path", req.Path),
				attribute.String("console.kind", string(req.Kind)),
				attribute.Int64("console.seq", int64(req.Seq)),
			),
		)
		defer span.End()

		req.Ctx = spanCtx
		err := next()

		if req.Entry.Name != "" {
			span.SetAttributes(attribute.String("console.route", req.Entry.Name))
		}
		span.SetAttributes(attribute.String("console.status", Status(err)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}
