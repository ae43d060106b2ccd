package realtime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	received []Event
	fail     bool
	closed   int
}

func (f *fakeConn) Send(ev Event) error {
	if f.fail {
		return errors.New("write failed")
	}
	f.received = append(f.received, ev)
	return nil
}

func (f *fakeConn) Close() {
	f.closed++
}

func TestHubRegisterIsIdempotent(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}

	hub.Register(conn)
	hub.Register(conn)

	assert.Equal(t, 1, hub.Len())
}

func TestHubUnregisterUnknownIsNoop(t *testing.T) {
	hub := NewHub()

	hub.Unregister(&fakeConn{})
	assert.Equal(t, 0, hub.Len())

	conn := &fakeConn{}
	hub.Register(conn)
	hub.Unregister(conn)
	hub.Unregister(conn)
	assert.Equal(t, 0, hub.Len())
}

func TestHubBroadcastDeliversToAll(t *testing.T) {
	hub := NewHub()
	conns := []*fakeConn{{}, {}, {}}
	for _, c := range conns {
		hub.Register(c)
	}

	hub.Broadcast(NewEvent(KindQueueUpdate))

	for _, c := range conns {
		assert.Len(t, c.received, 1)
		assert.Equal(t, KindQueueUpdate, c.received[0].Kind)
	}
}

// one dead connection must not abort delivery to the rest, and must
// be gone from the registry afterwards
func TestHubBroadcastPrunesFailedConnection(t *testing.T) {
	hub := NewHub()
	good1 := &fakeConn{}
	dead := &fakeConn{fail: true}
	good2 := &fakeConn{}

	hub.Register(good1)
	hub.Register(dead)
	hub.Register(good2)

	hub.Broadcast(NewEvent(KindQueueUpdate))

	assert.Len(t, good1.received, 1)
	assert.Len(t, good2.received, 1)
	assert.Equal(t, 2, hub.Len())

	// pruning also closes, so the stream behind it can stop
	assert.Equal(t, 1, dead.closed)
	assert.Zero(t, good1.closed)

	// the pruned connection stays out on the next broadcast
	hub.Broadcast(NewEvent(KindQueueUpdate))
	assert.Len(t, good1.received, 2)
	assert.Empty(t, dead.received)
}

// a slow consumer pruned by the hub must see its Done channel fire,
// otherwise its stream would idle on heartbeats forever
func TestHubBroadcastClosesPrunedStreamConn(t *testing.T) {
	hub := NewHub()
	conn := NewStreamConn()
	hub.Register(conn)

	for i := 0; i < streamBuffer; i++ {
		hub.Broadcast(NewEvent(KindQueueUpdate))
	}
	// buffer is full, the next broadcast prunes and closes
	hub.Broadcast(NewEvent(KindQueueUpdate))

	assert.Equal(t, 0, hub.Len())

	select {
	case <-conn.Done():
	default:
		t.Fatal("pruned connection was not closed")
	}
	assert.ErrorIs(t, conn.Send(NewEvent(KindQueueUpdate)), ErrClosed)
}

func TestEventTimestampIsEpochMillis(t *testing.T) {
	ev := NewEvent(KindHeartbeat)

	assert.Equal(t, KindHeartbeat, ev.Kind)
	// millisecond epoch, not seconds or nanos
	assert.Greater(t, ev.Timestamp, int64(1e12))
	assert.Less(t, ev.Timestamp, int64(1e14))
}
