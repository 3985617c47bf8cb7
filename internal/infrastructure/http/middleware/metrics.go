package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dzvolunteer_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	applicationOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dzvolunteer_applications_total",
			Help: "Mission application submissions by outcome",
		},
		[]string{"outcome"},
	)
	decisionOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dzvolunteer_decisions_total",
			Help: "Organization decisions on applications by action and outcome",
		},
		[]string{"action", "outcome"},
	)
	hoursValidatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dzvolunteer_hours_validated_total",
			Help: "Total volunteer hours credited through validation",
		},
	)
)

// PrometheusMiddleware records request duration.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := routePattern(r)
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// routePattern returns the chi route pattern so path parameters do not
// explode metric cardinality.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	path := r.URL.Path
	if path == "" {
		path = "/"
	}
	return path
}

// RecordApplication records a submission outcome ("accepted_for_review",
// "mission_full", "duplicate", "skill_gap", ...).
func RecordApplication(outcome string) {
	applicationOutcomes.WithLabelValues(outcome).Inc()
}

// RecordDecision records an organization decision outcome.
func RecordDecision(action, outcome string) {
	decisionOutcomes.WithLabelValues(action, outcome).Inc()
}

// RecordHoursValidated adds credited hours to the running counter.
func RecordHoursValidated(hours float64) {
	hoursValidatedTotal.Add(hours)
}
