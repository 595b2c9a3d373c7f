// Package observability holds the Prometheus instrumentation shared by the
// HTTP layer and the use-case handlers.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StatusTransitionsTotal counts committed delivery status transitions
	// by from/to pair.
	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "swiftdrop", Name: "status_transitions_total", Help: "Total committed delivery status transitions"},
		[]string{"from", "to"},
	)

	// DeliveriesCreatedTotal counts successfully created deliveries.
	DeliveriesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "swiftdrop", Name: "deliveries_created_total", Help: "Total deliveries created"},
	)

	// NotificationFailuresTotal counts notification sends that failed.
	NotificationFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{Namespace: "swiftdrop", Name: "notification_failures_total", Help: "Total WhatsApp notification failures"},
	)

	// HTTPRequestsTotal counts handled HTTP requests.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "swiftdrop", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration tracks request latency per route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "swiftdrop", Name: "http_request_duration_seconds", Help: "HTTP request latency"},
		[]string{"method", "path"},
	)
)

// TransitionRecorder bridges the status-transition counter into the command
// handlers without exposing the prometheus types to the core.
type TransitionRecorder struct{}

// ObserveTransition increments the transition counter for one pair.
func (TransitionRecorder) ObserveTransition(from, to string) {
	StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}
