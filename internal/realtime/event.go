package realtime

import "time"

// ===============================
// Live events
// ===============================

// Events are change signals, not change payloads: a client that
// receives queue_update re-fetches the active queue. Shipping the
// enriched state inside the event would race with the next mutation.

const (
	KindConnected   = "connected"
	KindHeartbeat   = "heartbeat"
	KindQueueUpdate = "queue_update"
)

type Event struct {
	Kind      string `json:"kind"`
	Timestamp int64  `json:"timestamp"`
}

func NewEvent(kind string) Event {
	return Event{
		Kind:      kind,
		Timestamp: time.Now().UnixMilli(),
	}
}
