package realtime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreamConnSendAndReceive(t *testing.T) {
	conn := NewStreamConn()

	require.NoError(t, conn.Send(NewEvent(KindQueueUpdate)))

	ev := <-conn.Events()
	assert.Equal(t, KindQueueUpdate, ev.Kind)
}

func TestStreamConnSendAfterClose(t *testing.T) {
	conn := NewStreamConn()
	conn.Close()

	err := conn.Send(NewEvent(KindQueueUpdate))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStreamConnDoneFiresOnClose(t *testing.T) {
	conn := NewStreamConn()

	select {
	case <-conn.Done():
		t.Fatal("done fired before close")
	default:
	}

	conn.Close()

	select {
	case <-conn.Done():
	default:
		t.Fatal("done did not fire after close")
	}
}

func TestStreamConnCloseIsIdempotent(t *testing.T) {
	conn := NewStreamConn()

	assert.NotPanics(t, func() {
		conn.Close()
		conn.Close()
	})
}

// a client that stops draining counts as a failed write, so the hub
// will prune it instead of blocking the broadcaster
func TestStreamConnFullBufferFailsSend(t *testing.T) {
	conn := NewStreamConn()

	for i := 0; i < streamBuffer; i++ {
		require.NoError(t, conn.Send(NewEvent(KindQueueUpdate)))
	}

	err := conn.Send(NewEvent(KindQueueUpdate))
	assert.ErrorIs(t, err, ErrSlowConsumer)
}
