package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	liveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "queue_live_connections",
			Help: "Currently open live-update connections",
		},
	)

	broadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_broadcasts_total",
			Help: "Events broadcast to live connections",
		},
		[]string{"kind"},
	)

	broadcastFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_broadcast_failures_total",
			Help: "Connections pruned after a failed write",
		},
	)

	transitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_transitions_total",
			Help: "Queue entry state transitions",
		},
		[]string{"action", "result"},
	)

	outboxDeliveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "queue_history_outbox_deliveries_total",
			Help: "History outbox delivery attempts",
		},
		[]string{"result"},
	)
)

func SetLiveConnections(n int) {
	liveConnections.Set(float64(n))
}

func IncBroadcast(kind string) {
	broadcasts.WithLabelValues(kind).Inc()
}

func IncBroadcastFailure() {
	broadcastFailures.Inc()
}

func RecordTransition(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	transitions.WithLabelValues(action, result).Inc()
}

func RecordOutboxDelivery(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	outboxDeliveries.WithLabelValues(result).Inc()
}
