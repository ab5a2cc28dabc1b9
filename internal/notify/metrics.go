package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ConnectedSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "notify_connected_sessions",
			Help: "Number of connected WebSocket sessions",
		},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_events_published_total",
			Help: "Total number of events handed to the broadcaster",
		},
		[]string{"kind"},
	)

	EventsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "notify_events_dropped_total",
			Help: "Total number of per-session sends dropped on a full buffer",
		},
	)
)
