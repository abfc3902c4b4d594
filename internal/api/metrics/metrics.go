// Package metrics defines and registers the custom Prometheus metrics for
// the dealership account API. It is the single source of truth for metric
// names, labels, and help strings; collectors register themselves with the
// default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dealership"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure" (the failure label never distinguishes
//     unknown email from wrong password)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "success", "validation_failed", "conflict", or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerifyFailures counts bearer tokens rejected by the identity
// middleware.
// Label:
//   - reason: "expired", "malformed", or "unknown"
var TokenVerifyFailures = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verify_failures_total",
		Help:      "Total number of cookie tokens that failed verification, by reason.",
	},
	[]string{"reason"},
)

// ProfileUpdatesTotal counts profile and password update attempts.
// Labels:
//   - kind: "profile" or "password"
//   - result: "success", "validation_failed", "conflict", or "error"
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_updates_total",
		Help:      "Total number of account update attempts, by kind and result.",
	},
	[]string{"kind", "result"},
)
