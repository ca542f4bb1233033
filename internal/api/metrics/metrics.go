// Package metrics defines and registers the custom Prometheus metrics for the
// church management API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default registry at init; the router exposes them
// on /metrics together with the echoprometheus request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "chms"

// RegistrationsTotal counts completed registrations.
// Label:
//   - role: the role of the created principal ("user" or "admin")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of principals registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts by outcome.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// AuthDeniedTotal counts requests rejected by the identity resolver or the
// authorization gate.
// Label:
//   - reason: the HTTP status text ("Unauthorized" or "Forbidden")
var AuthDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_denied_total",
		Help:      "Total number of requests denied authentication or authorization.",
	},
	[]string{"reason"},
)

// NotificationsDispatchedTotal counts notification deliveries handed to the
// sink.
// Label:
//   - result: "delivered" or "failed"
var NotificationsDispatchedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_dispatched_total",
		Help:      "Total number of notification deliveries attempted, by result.",
	},
	[]string{"result"},
)
