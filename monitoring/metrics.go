// Package monitoring exposes Prometheus metrics for the order API
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts handled HTTP requests by route and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_api_http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by route
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_api_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// WebhookEventsTotal counts gateway webhook deliveries by outcome
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_api_webhook_events_total",
			Help: "Total number of payment gateway webhook deliveries by outcome",
		},
		[]string{"gateway", "outcome"},
	)

	// OrdersCreatedTotal counts orders created through the API
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_api_orders_created_total",
			Help: "Total number of orders created",
		},
	)

	// SubscriptionActivationsTotal counts successful subscription activations
	SubscriptionActivationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_api_subscription_activations_total",
			Help: "Total number of subscription activations after payment",
		},
	)
)

// Handler returns the Prometheus metrics endpoint handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder captures the response status code for metric labels
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// InstrumentRoute wraps a handler with request count and latency metrics.
// The route label is the registered pattern, not the raw path, to keep
// label cardinality bounded.
func InstrumentRoute(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rec.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
