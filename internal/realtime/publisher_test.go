package realtime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublisherBroadcastsLocally(t *testing.T) {
	hub := NewHub()
	conn := &fakeConn{}
	hub.Register(conn)

	pub := NewPublisher(hub, nil)
	pub.QueueChanged(context.Background())

	require.Len(t, conn.received, 1)
	assert.Equal(t, KindQueueUpdate, conn.received[0].Kind)
}
