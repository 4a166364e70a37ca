package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "signature"

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Payment metrics
	paymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "attempts_total",
			Help:      "Total number of payment attempts",
		},
		[]string{"method", "status"},
	)

	paymentAmount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "collected_cents_total",
			Help:      "Amount collected by successful payments in minor units",
		},
		[]string{"currency"},
	)

	refundsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "refunds_total",
			Help:      "Total number of refund attempts",
		},
		[]string{"status"},
	)

	// Checkout metrics
	checkoutDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "checkout",
			Name:      "duration_seconds",
			Help:      "Duration of checkout including the gateway round trip",
			Buckets:   []float64{.1, .25, .5, 1, 1.5, 2, 3, 5, 10},
		},
		[]string{"outcome"},
	)

	// Subscription metrics
	subscriptionsByStatus = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "subscription",
			Name:      "count",
			Help:      "Number of subscriptions by status",
		},
		[]string{"status"},
	)

	subscriptionTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscription",
			Name:      "transitions_total",
			Help:      "Total number of subscription status transitions",
		},
		[]string{"to"},
	)

	// Scheduler metrics
	lifecycleRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "lifecycle",
			Name:      "run_duration_seconds",
			Help:      "Duration of a subscription lifecycle sweep",
			Buckets:   []float64{.01, .05, .1, .5, 1, 5, 30},
		},
	)

	// Cache metrics
	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "View cache lookups by result",
		},
		[]string{"view", "result"},
	)

	// Database metrics
	dbQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation", "table"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordPayment records a payment attempt and, when completed, the amount collected
func RecordPayment(method, status, currency string, amount int64) {
	paymentsTotal.WithLabelValues(method, status).Inc()
	if status == "COMPLETED" {
		paymentAmount.WithLabelValues(currency).Add(float64(amount))
	}
}

// RecordRefund records a refund attempt
func RecordRefund(status string) {
	refundsTotal.WithLabelValues(status).Inc()
}

// RecordCheckout records the duration of a checkout by outcome
func RecordCheckout(outcome string, duration time.Duration) {
	checkoutDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// SetSubscriptions sets the gauge for subscriptions by status
func SetSubscriptions(status string, count float64) {
	subscriptionsByStatus.WithLabelValues(status).Set(count)
}

// RecordSubscriptionTransition counts a subscription moving into a status
func RecordSubscriptionTransition(to string) {
	subscriptionTransitions.WithLabelValues(to).Inc()
}

// RecordLifecycleRun records the duration of a lifecycle sweep
func RecordLifecycleRun(duration time.Duration) {
	lifecycleRunDuration.Observe(duration.Seconds())
}

// RecordCacheLookup records a view cache hit or miss
func RecordCacheLookup(view string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheLookups.WithLabelValues(view, result).Inc()
}

// RecordDBQuery records a database query duration
func RecordDBQuery(operation, table string, duration time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}
