package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of in-flight HTTP requests",
		},
	)

	leadsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_created_total",
			Help: "Leads persisted from quote requests",
		},
		[]string{"insurance_type"},
	)

	leadAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_assignments_total",
			Help: "Automatic assignment attempts by result",
		},
		[]string{"result"},
	)

	notifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notifications_total",
			Help: "Transactional emails by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	leadEventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_events_consumed_total",
			Help: "Lead events processed by the worker",
		},
		[]string{"type", "outcome"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of collaborator errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware labels requests by chi route pattern so ids in paths do not
// explode the series count.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

func RecordLeadCreated(insuranceType string) {
	leadsCreated.WithLabelValues(insuranceType).Inc()
}

// Assignment results.
const (
	AssignmentAssigned  = "assigned"
	AssignmentUnmatched = "unmatched"
	AssignmentLostRace  = "lost_race"
	AssignmentFailed    = "failed"
)

func RecordAssignment(result string) {
	leadAssignments.WithLabelValues(result).Inc()
}

func RecordNotification(kind, outcome string) {
	notifications.WithLabelValues(kind, outcome).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}

func RecordLeadEventConsumed(eventType, outcome string) {
	leadEventsConsumed.WithLabelValues(eventType, outcome).Inc()
}
