package middleware

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/wayfinder-dev/wayfinder/pkg/router"
)

// Default tracer name for router navigations.
const defaultTracerName = "wayfinder"

// OTelConfig configures the OpenTelemetry middleware.
type OTelConfig struct {
	// TracerName is the name of the tracer (default: "wayfinder").
	TracerName string

	// IncludeParams includes route parameter values as span attributes.
	// Parameter values may carry user data, so this is off by default.
	IncludeParams bool

	// Filter determines which navigations to trace.
	// Return true to trace, false to skip. If nil, all are traced.
	Filter func(ctx *router.Context) bool

	// AttributeExtractor adds custom attributes per navigation.
	AttributeExtractor func(ctx *router.Context) []attribute.KeyValue

	tracer trace.Tracer
}

// OTelOption configures the OpenTelemetry middleware.
type OTelOption func(*OTelConfig)

// WithTracerName sets the tracer name.
func WithTracerName(name string) OTelOption {
	return func(c *OTelConfig) {
		c.TracerName = name
	}
}

// WithIncludeParams enables recording route parameter values on spans.
func WithIncludeParams(include bool) OTelOption {
	return func(c *OTelConfig) {
		c.IncludeParams = include
	}
}

// WithNavigationFilter sets a filter for which navigations to trace.
func WithNavigationFilter(filter func(ctx *router.Context) bool) OTelOption {
	return func(c *OTelConfig) {
		c.Filter = filter
	}
}

// WithAttributeExtractor sets a custom attribute extractor.
func WithAttributeExtractor(extractor func(ctx *router.Context) []attribute.KeyValue) OTelOption {
	return func(c *OTelConfig) {
		c.AttributeExtractor = extractor
	}
}

// OpenTelemetry creates middleware that traces every navigation.
//
// Each navigation becomes a span named "navigate <route template>" with the
// concrete path, the matched template, and the navigation outcome. The span
// is stored on the navigation context; handlers retrieve it with
// SpanFromContext.
//
// The tracer comes from the global tracer provider; configure that in
// main() before Init:
//
//	otel.SetTracerProvider(tp)
func OpenTelemetry(opts ...OTelOption) router.Middleware {
	config := OTelConfig{TracerName: defaultTracerName}
	for _, opt := range opts {
		opt(&config)
	}
	config.tracer = otel.Tracer(config.TracerName)

	return router.MiddlewareFunc(func(ctx *router.Context, next func() error) error {
		if config.Filter != nil && !config.Filter(ctx) {
			return next()
		}

		attrs := []attribute.KeyValue{
			attribute.String("wayfinder.path", ctx.Path),
			attribute.String("wayfinder.route", routeLabel(ctx)),
		}
		if config.IncludeParams {
			for name, value := range ctx.Params {
				attrs = append(attrs, attribute.String("wayfinder.param."+name, value))
			}
		}
		if config.AttributeExtractor != nil {
			attrs = append(attrs, config.AttributeExtractor(ctx)...)
		}

		spanCtx, span := config.tracer.Start(
			ctx.Context(),
			"navigate "+routeLabel(ctx),
			trace.WithSpanKind(trace.SpanKindInternal),
			trace.WithAttributes(attrs...),
			trace.WithTimestamp(time.Now()),
		)
		defer span.End()

		ctx.SetValue(spanContextKey{}, spanCtx)

		err := next()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		return err
	})
}

// spanContextKey is the key for the span context on the navigation context.
type spanContextKey struct{}

// SpanFromContext retrieves the navigation's trace span.
// Returns a no-op span if the OpenTelemetry middleware is not installed.
func SpanFromContext(ctx *router.Context) trace.Span {
	if spanCtx, ok := ctx.Value(spanContextKey{}).(context.Context); ok {
		return trace.SpanFromContext(spanCtx)
	}
	return trace.SpanFromContext(ctx.Context())
}
