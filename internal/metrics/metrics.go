// Package metrics declares the Prometheus instruments for the FarmDesk API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmdesk_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "farmdesk_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"method", "path"},
	)

	// Inbox metrics
	MessagesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "farmdesk_messages_submitted_total",
			Help: "Total contact messages submitted",
		},
	)

	MessageStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "farmdesk_message_status_updates_total",
			Help: "Total message status updates",
		},
		[]string{"status"},
	)

	MessagesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "farmdesk_messages_deleted_total",
			Help: "Total messages deleted",
		},
	)
)
