package realtime

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const relayChannel = "queue:events"

// Relay fans queue events out across API instances through redis
// pub/sub. Each instance tags published events with its own id and
// ignores them on the way back in, so local clients hear every
// change exactly once per instance.
type Relay struct {
	rdb        *redis.Client
	hub        *Hub
	instanceID string
}

type relayEnvelope struct {
	Origin string `json:"origin"`
	Event  Event  `json:"event"`
}

func NewRelay(rdb *redis.Client, hub *Hub) *Relay {
	return &Relay{
		rdb:        rdb,
		hub:        hub,
		instanceID: uuid.NewString(),
	}
}

// Publish pushes ev to the other instances. Failures are logged and
// swallowed: the local broadcast already happened and a missed relay
// only delays remote clients until their next heartbeat-driven
// refresh.
func (r *Relay) Publish(ctx context.Context, ev Event) {
	payload, err := json.Marshal(relayEnvelope{
		Origin: r.instanceID,
		Event:  ev,
	})
	if err != nil {
		return
	}

	if err := r.rdb.Publish(ctx, relayChannel, payload).Err(); err != nil {
		log.Println("realtime: relay publish failed:", err)
	}
}

// Run subscribes and re-broadcasts remote events locally until ctx
// is canceled.
func (r *Relay) Run(ctx context.Context) {
	sub := r.rdb.Subscribe(ctx, relayChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			r.handleMessage([]byte(msg.Payload))
		}
	}
}

func (r *Relay) handleMessage(payload []byte) {
	var env relayEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		log.Println("realtime: bad relay payload:", err)
		return
	}

	if env.Origin == r.instanceID {
		return
	}

	r.hub.Broadcast(env.Event)
}
