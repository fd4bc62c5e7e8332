// Package metrics defines the custom Prometheus metrics for the emergency
// directory API. It is the single source of truth for metric names, labels,
// and help strings; request-level latency metrics come from the
// echoprometheus middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "directory"

// LoginAttemptsTotal counts login outcomes.
// Label:
//   - result: "success", "invalid", or "throttled"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// SignupsTotal counts created identities by role.
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of identities created, by role.",
	},
	[]string{"role"},
)

// AuthRejectionsTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_token", "token_expired", "token_invalid", "identity_not_found"
var AuthRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejections_total",
		Help:      "Total number of requests rejected during authentication.",
	},
	[]string{"reason"},
)

// DirectoryLookupsTotal counts public directory listings served.
// Label:
//   - resource: "hospitals" or "bloodbanks"
var DirectoryLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Total number of public directory listings served, by resource.",
	},
	[]string{"resource"},
)
