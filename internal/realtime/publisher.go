package realtime

import "context"

// Publisher is what the mutation side holds: one narrow "the queue
// changed" capability, local broadcast plus optional cross-instance
// relay. Injected at construction so the use cases never touch the
// hub directly.
type Publisher struct {
	hub   *Hub
	relay *Relay
}

func NewPublisher(hub *Hub, relay *Relay) *Publisher {
	return &Publisher{hub: hub, relay: relay}
}

// QueueChanged must only be called after the mutation's transaction
// committed. Broadcasting first would announce state that might
// still roll back.
func (p *Publisher) QueueChanged(ctx context.Context) {
	ev := NewEvent(KindQueueUpdate)
	p.hub.Broadcast(ev)

	if p.relay != nil {
		p.relay.Publish(ctx, ev)
	}
}
