package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope of every bridge span
const TracerName = "github.com/erp/orderbridge"

// Span attribute keys shared across the bridge
const (
	AttrStoreID          = attribute.Key("bridge.store_id")
	AttrOperation        = attribute.Key("bridge.operation")
	AttrPage             = attribute.Key("bridge.page")
	AttrPageOrders       = attribute.Key("bridge.page.orders")
	AttrRequestID        = attribute.Key("bridge.request_id")
	AttrHTTPMethod       = attribute.Key("http.request.method")
	AttrHTTPStatusCode   = attribute.Key("http.response.status_code")
	AttrURL              = attribute.Key("url.full")
	AttrChannelErrorKind = attribute.Key("bridge.channel_error")
)

type spanConfig struct {
	kind  trace.SpanKind
	attrs []attribute.KeyValue
}

// SpanOption configures StartSpan
type SpanOption func(*spanConfig)

// WithSpanKind sets the span kind (internal by default)
func WithSpanKind(kind trace.SpanKind) SpanOption {
	return func(c *spanConfig) {
		c.kind = kind
	}
}

// WithAttributes adds attributes at span start
func WithAttributes(attrs ...attribute.KeyValue) SpanOption {
	return func(c *spanConfig) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// StartSpan starts a span on the global tracer provider
func StartSpan(ctx context.Context, name string, opts ...SpanOption) (context.Context, trace.Span) {
	cfg := spanConfig{kind: trace.SpanKindInternal}
	for _, opt := range opts {
		opt(&cfg)
	}

	return otel.GetTracerProvider().Tracer(TracerName).Start(ctx, name,
		trace.WithSpanKind(cfg.kind),
		trace.WithAttributes(cfg.attrs...),
	)
}

// RecordError marks the span failed. A nil error is ignored.
func RecordError(span trace.Span, err error) {
	if err == nil || !span.IsRecording() {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// TraceID returns the active trace ID, or "" outside a sampled span
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return ""
	}
	return sc.TraceID().String()
}
