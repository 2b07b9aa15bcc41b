// Package metrics exposes channel traffic counters for Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erp/orderbridge/internal/infrastructure/ecommerce"
	"github.com/erp/orderbridge/internal/infrastructure/transport"
)

const namespace = "orderbridge"

// Registry owns a private Prometheus registry and the bridge's collectors
type Registry struct {
	reg *prometheus.Registry

	channelRequests *prometheus.CounterVec
	channelDuration *prometheus.HistogramVec
	pages           *prometheus.CounterVec
	pageLimits      *prometheus.CounterVec
	phoneRetries    prometheus.Counter
	placeOrders     *prometheus.CounterVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	httpInFlight prometheus.Gauge
}

// NewRegistry creates the collectors and registers them with Go runtime and
// process collectors
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		channelRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_requests_total",
			Help:      "Requests sent to commerce channels by method and response status (0 when unreachable).",
		}, []string{"method", "status"}),
		channelDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "channel_request_duration_seconds",
			Help:      "Duration of commerce channel requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_pages_total",
			Help:      "Order pages fetched per operation.",
		}, []string{"operation"}),
		pageLimits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "channel_page_limit_reached_total",
			Help:      "Page walks stopped at the page ceiling.",
		}, []string{"operation"}),
		phoneRetries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "place_order_phone_retries_total",
			Help:      "Orders resubmitted without a phone number after the channel rejected it.",
		}),
		placeOrders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "place_orders_total",
			Help:      "place_order requests by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_server_requests_total",
			Help:      "Requests served by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_server_request_duration_seconds",
			Help:      "Latency of served requests.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "route"}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_server_active_requests",
			Help:      "Requests currently being served.",
		}),
	}

	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.channelRequests,
		r.channelDuration,
		r.pages,
		r.pageLimits,
		r.phoneRetries,
		r.placeOrders,
		r.httpRequests,
		r.httpDuration,
		r.httpInFlight,
	)
	return r
}

// ObserveRequest implements transport.RequestObserver
func (r *Registry) ObserveRequest(method string, statusCode int, duration time.Duration) {
	r.channelRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	r.channelDuration.WithLabelValues(method).Observe(duration.Seconds())
}

// ObservePage implements ecommerce.PageRecorder
func (r *Registry) ObservePage(operation string) {
	r.pages.WithLabelValues(operation).Inc()
}

// ObservePageLimit implements ecommerce.PageRecorder
func (r *Registry) ObservePageLimit(operation string) {
	r.pageLimits.WithLabelValues(operation).Inc()
}

// ObservePhoneRetry implements ecommerce.PageRecorder
func (r *Registry) ObservePhoneRetry() {
	r.phoneRetries.Inc()
}

// ObservePlaceOrder counts a place_order outcome (success, failed, duplicate)
func (r *Registry) ObservePlaceOrder(outcome string) {
	r.placeOrders.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest implements middleware.HTTPRecorder
func (r *Registry) ObserveHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(statusCode)).Inc()
	r.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// AddInFlight implements middleware.HTTPRecorder
func (r *Registry) AddInFlight(delta float64) {
	r.httpInFlight.Add(delta)
}

// Handler serves the registry in the Prometheus exposition format
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the registry to tests and embedding servers
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

var (
	_ transport.RequestObserver = (*Registry)(nil)
	_ ecommerce.PageRecorder    = (*Registry)(nil)
)
