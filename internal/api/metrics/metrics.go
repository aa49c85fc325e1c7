// Package metrics defines and registers all custom Prometheus metrics for
// the devlog API. It is the single source of truth for metric names, labels,
// and help strings; registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "devlog"

// ── Account metrics ───────────────────────────────────────────────────────────

// RegistrationsTotal counts successful account registrations.
var RegistrationsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of successfully registered accounts.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ── Entry metrics ─────────────────────────────────────────────────────────────

// EntriesCreatedTotal counts newly created work-log entries.
var EntriesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_created_total",
		Help:      "Total number of work-log entries created.",
	},
)

// EntriesMutatedTotal counts successful entry mutations.
// Label:
//   - op: "update" or "delete"
var EntriesMutatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entries_mutated_total",
		Help:      "Total number of successful entry updates and deletes.",
	},
	[]string{"op"},
)

// ── Realtime relay metrics ────────────────────────────────────────────────────

// RelayConnections tracks currently open relay websocket connections.
var RelayConnections = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "relay_connections",
		Help:      "Number of currently open realtime relay connections.",
	},
)

// RelayEventsTotal counts relay events handled, by event name.
var RelayEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "relay_events_total",
		Help:      "Total number of realtime relay events handled, by event.",
	},
	[]string{"event"},
)
