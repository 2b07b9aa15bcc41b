// Package transport provides the HTTP client used to talk to commerce channels.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/orderbridge/internal/domain/integration"
	"github.com/erp/orderbridge/internal/infrastructure/telemetry"
)

// maxResponseSize is the maximum allowed response size from a channel API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// RequestObserver records the outcome of each channel request
type RequestObserver interface {
	ObserveRequest(method string, statusCode int, duration time.Duration)
}

// Config holds HTTP transport configuration
type Config struct {
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
	// MaxResponseBytes bounds how much of a response body is read
	MaxResponseBytes int64
}

// Validate fills in defaults
func (c *Config) Validate() error {
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	if c.MaxResponseBytes <= 0 {
		c.MaxResponseBytes = maxResponseSize
	}
	return nil
}

// HTTPTransport implements integration.Transport over net/http
type HTTPTransport struct {
	client   *http.Client
	maxBytes int64
	logger   *zap.Logger
	observer RequestObserver
}

// Option configures an HTTPTransport
type Option func(*HTTPTransport)

// WithHTTPClient replaces the underlying client
func WithHTTPClient(client *http.Client) Option {
	return func(t *HTTPTransport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithLogger sets the transport logger
func WithLogger(logger *zap.Logger) Option {
	return func(t *HTTPTransport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithObserver sets the request observer
func WithObserver(observer RequestObserver) Option {
	return func(t *HTTPTransport) {
		t.observer = observer
	}
}

// NewHTTPTransport creates a transport with the given configuration
func NewHTTPTransport(cfg Config, opts ...Option) *HTTPTransport {
	_ = cfg.Validate()
	t := &HTTPTransport{
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		maxBytes: cfg.MaxResponseBytes,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Send performs the request inside a client span. Connection failures become
// UNREACHABLE channel errors and non-2xx responses become REJECTED channel
// errors carrying the status, headers and body.
func (t *HTTPTransport) Send(ctx context.Context, req *integration.TransportRequest) (resp *integration.TransportResponse, err error) {
	ctx, span := telemetry.StartSpan(ctx, "channel "+req.Method,
		telemetry.WithSpanKind(trace.SpanKindClient),
		telemetry.WithAttributes(
			telemetry.AttrHTTPMethod.String(req.Method),
			telemetry.AttrURL.String(req.URL),
		),
	)
	defer func() {
		if resp != nil {
			span.SetAttributes(telemetry.AttrHTTPStatusCode.Int(resp.StatusCode))
		}
		if ce, ok := integration.AsChannelError(err); ok {
			span.SetAttributes(telemetry.AttrChannelErrorKind.String(string(ce.Kind)))
			if ce.StatusCode != 0 {
				span.SetAttributes(telemetry.AttrHTTPStatusCode.Int(ce.StatusCode))
			}
		}
		telemetry.RecordError(span, err)
		span.End()
	}()

	return t.send(ctx, req)
}

func (t *HTTPTransport) send(ctx context.Context, req *integration.TransportRequest) (*integration.TransportResponse, error) {
	rawURL := req.URL
	if len(req.Query) > 0 {
		rawURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("transport: failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("transport: failed to create request: %w", err)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(httpReq.Header))

	started := time.Now()
	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.observe(req.Method, 0, started)
		t.logger.Warn("channel unreachable", zap.String("method", req.Method), zap.String("url", req.URL), zap.Error(err))
		return nil, integration.NewUnreachableError(req.URL, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, t.maxBytes))
	t.observe(req.Method, resp.StatusCode, started)
	if err != nil {
		return nil, integration.NewUnreachableError(req.URL, fmt.Errorf("failed to read response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		t.logger.Debug("channel rejected request",
			zap.String("method", req.Method),
			zap.String("url", req.URL),
			zap.Int("status", resp.StatusCode))
		return nil, integration.NewRejectedError(req.URL, resp.StatusCode, resp.Header, respBody)
	}

	return &integration.TransportResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       respBody,
	}, nil
}

func (t *HTTPTransport) observe(method string, status int, started time.Time) {
	if t.observer != nil {
		t.observer.ObserveRequest(method, status, time.Since(started))
	}
}

var _ integration.Transport = (*HTTPTransport)(nil)
