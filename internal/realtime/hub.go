package realtime

import (
	"log"
	"sync"

	"github.com/BruksfildServices01/barber-queue/internal/monitoring"
)

// Connection is one open live-update channel. Send must not block;
// a connection that cannot take the event reports an error and gets
// pruned by the hub. Close must be idempotent, the hub closes what
// it prunes and the gateway closes again on teardown.
type Connection interface {
	Send(Event) error
	Close()
}

// Hub is the process-wide registry of open live connections. It is
// the only shared mutable state in the queue core; one mutex is
// enough, the registry is not a hot path.
type Hub struct {
	mu    sync.Mutex
	conns map[Connection]struct{}
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[Connection]struct{}),
	}
}

// Register adds a connection. Registering the same connection twice
// is a no-op.
func (h *Hub) Register(conn Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn]; ok {
		return
	}
	h.conns[conn] = struct{}{}
	monitoring.SetLiveConnections(len(h.conns))
}

// Unregister removes a connection. Safe to call on a connection that
// was never registered or was already pruned.
func (h *Hub) Unregister(conn Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.conns[conn]; !ok {
		return
	}
	delete(h.conns, conn)
	monitoring.SetLiveConnections(len(h.conns))
}

// Broadcast delivers ev to every registered connection, best effort.
// A connection whose Send fails is removed and closed so one dead
// client never blocks delivery to the rest; closing gives its
// gateway handler the signal to tear down.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		if err := conn.Send(ev); err != nil {
			log.Println("realtime: dropping connection:", err)
			delete(h.conns, conn)
			conn.Close()
			monitoring.IncBroadcastFailure()
		}
	}
	monitoring.SetLiveConnections(len(h.conns))
	monitoring.IncBroadcast(ev.Kind)
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
