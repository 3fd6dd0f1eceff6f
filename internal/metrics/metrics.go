package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"visitor-trivia-service/internal/domain"
)

var (
	FirstVisits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitor_first_visits_total",
		Help: "Visitors that arrived without a valid visit marker",
	})

	ReturningVisits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "visitor_returning_visits_total",
		Help: "Visitors that presented a valid visit marker",
	})

	QuestionsServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trivia_questions_served_total",
		Help: "Trivia questions fetched and shaped successfully",
	})

	UpstreamErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trivia_upstream_errors_total",
			Help: "Failed trivia fetches by kind",
		},
		[]string{"kind"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Number of HTTP requests currently being processed",
	})
)

// RecordVisit counts a tracked visit.
func RecordVisit(returning bool) {
	if returning {
		ReturningVisits.Inc()
		return
	}
	FirstVisits.Inc()
}

// UpstreamErrorKind classifies a trivia fetch error for labeling.
func UpstreamErrorKind(err error) string {
	var transportErr *domain.UpstreamTransportError
	var appErr *domain.UpstreamApplicationError
	switch {
	case errors.As(err, &transportErr):
		return "transport"
	case errors.As(err, &appErr):
		return "application"
	case errors.Is(err, domain.ErrMalformedResponse):
		return "malformed"
	case errors.Is(err, domain.ErrNoQuestion):
		return "empty"
	default:
		return "other"
	}
}

// RecordUpstreamError counts a failed trivia fetch.
func RecordUpstreamError(err error) {
	UpstreamErrors.WithLabelValues(UpstreamErrorKind(err)).Inc()
}
