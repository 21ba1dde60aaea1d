// Package metrics defines and registers all custom Prometheus metrics for
// the ConectaPG portal. It is the single source of truth for metric names,
// labels, and help strings; registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "conectapg"

// BackendRequestsTotal counts every call made to the backend REST service.
// Labels:
//   - method: HTTP method
//   - endpoint: templated path (e.g. "/ocorrencias/{id}"), never a concrete URL
//   - status: numeric HTTP status, or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests issued to the ConectaPG backend.",
	},
	[]string{"method", "endpoint", "status"},
)

// BackendRequestDuration measures backend call latency end to end.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of backend requests, by templated endpoint.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint"},
)

// LoginsTotal counts login attempts by outcome ("success" or "failure").
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// IncidentsCreatedTotal counts incidents submitted through the portal.
var IncidentsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "incidents_created_total",
		Help:      "Total number of incidents created, by type.",
	},
	[]string{"tipo"},
)

// StatusTransitionsTotal counts status transitions applied by staff users.
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of incident status transitions, by edge.",
	},
	[]string{"from", "to"},
)
