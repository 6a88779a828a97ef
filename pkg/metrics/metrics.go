// Package metrics exposes Prometheus collectors for HTTP traffic and the
// point-of-sale business counters.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waroengpos",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests by method and status code.",
	}, []string{"method", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "waroengpos",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waroengpos",
		Subsystem: "pos",
		Name:      "orders_created_total",
		Help:      "Orders successfully placed.",
	})

	PaymentRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waroengpos",
		Subsystem: "pos",
		Name:      "payment_requests_total",
		Help:      "Outbound payment gateway requests by outcome.",
	}, []string{"outcome"})

	WebhooksReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "waroengpos",
		Subsystem: "pos",
		Name:      "payment_webhooks_total",
		Help:      "Payment webhook deliveries by result.",
	}, []string{"result"})

	OrdersExpired = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "waroengpos",
		Subsystem: "pos",
		Name:      "orders_expired_total",
		Help:      "Stale unpaid orders expired by the sweeper.",
	})
)

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latency for every route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		httpRequests.WithLabelValues(r.Method, strconv.Itoa(sw.status)).Inc()
		httpDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}

// Handler serves the /metrics scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
