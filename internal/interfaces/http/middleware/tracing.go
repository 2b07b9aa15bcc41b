package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/erp/orderbridge/internal/infrastructure/telemetry"
)

// TraceIDHeader echoes the trace ID so callers can quote it in support requests
const TraceIDHeader = "X-Trace-ID"

// maxStoreIDLength bounds the header value copied onto spans
const maxStoreIDLength = 128

// TracingConfig holds configuration for the tracing middleware
type TracingConfig struct {
	ServiceName string
	Enabled     bool
	// TracerProvider defaults to the global provider
	TracerProvider trace.TracerProvider
}

// Tracing opens a server span per request with otelgin, then tags it with the
// request and store IDs. Responses of 400 and above mark the span failed.
// Disabled tracing yields an empty chain.
func Tracing(cfg TracingConfig) gin.HandlersChain {
	if !cfg.Enabled {
		return nil
	}

	var opts []otelgin.Option
	if cfg.TracerProvider != nil {
		opts = append(opts, otelgin.WithTracerProvider(cfg.TracerProvider))
	}

	return gin.HandlersChain{
		otelgin.Middleware(cfg.ServiceName, opts...),
		annotateSpan,
	}
}

// annotateSpan runs inside the otelgin span, so the span is still open after c.Next
func annotateSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if !span.IsRecording() {
		c.Next()
		return
	}

	if requestID := c.GetString(RequestIDKey); requestID != "" {
		span.SetAttributes(telemetry.AttrRequestID.String(requestID))
	}
	if storeID := strings.TrimSpace(c.GetHeader(StoreIDHeader)); storeID != "" {
		if len(storeID) > maxStoreIDLength {
			storeID = storeID[:maxStoreIDLength]
		}
		span.SetAttributes(telemetry.AttrStoreID.String(storeID))
	}
	c.Writer.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

	c.Next()

	if status := c.Writer.Status(); status >= http.StatusBadRequest {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
