package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kivigroup"

var (
	Registry = prometheus.NewRegistry()

	MessagesRouted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_routed_total",
			Help:      "Group messages handed over to a collaborator, by message type.",
		},
		[]string{"type"},
	)

	MessagesDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_dropped_total",
			Help:      "Group messages that were not delivered to any collaborator.",
		},
		[]string{"reason"},
	)

	ViewsInstalled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_installed_total",
			Help:      "Number of views installed in the membership registry.",
		},
	)

	ViewsRejected = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "views_rejected_total",
			Help:      "Number of delivered views that could not be installed.",
		},
	)

	ReconcileErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "member_reconcile_errors_total",
			Help:      "Members that ended up in ERROR status during a view change.",
		},
	)

	SnapshotsStaged = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exchange_snapshots_total",
			Help:      "Exchanged member snapshots by staging outcome.",
		},
		[]string{"outcome"},
	)

	MembersByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "members",
			Help:      "Number of known group members by status.",
		},
		[]string{"status"},
	)

	ViewWaitTimeouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_wait_timeouts_total",
			Help:      "Waits for a view modification that gave up on timeout.",
		},
	)
)

func init() {
	Registry.MustRegister(
		MessagesRouted,
		MessagesDropped,
		ViewsInstalled,
		ViewsRejected,
		ReconcileErrors,
		SnapshotsStaged,
		MembersByStatus,
		ViewWaitTimeouts,
	)
}

// MetricsHandler exposes the registry in the prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
