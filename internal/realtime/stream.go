package realtime

import (
	"errors"
	"sync"
)

var (
	ErrClosed       = errors.New("connection closed")
	ErrSlowConsumer = errors.New("connection buffer full")
)

const streamBuffer = 8

// StreamConn adapts one SSE client to the hub: the hub pushes into a
// buffered channel, the gateway handler drains it onto the wire. A
// full buffer counts as a failed write, same as a dead socket.
type StreamConn struct {
	ch   chan Event
	done chan struct{}
	once sync.Once
}

func NewStreamConn() *StreamConn {
	return &StreamConn{
		ch:   make(chan Event, streamBuffer),
		done: make(chan struct{}),
	}
}

func (c *StreamConn) Send(ev Event) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	select {
	case c.ch <- ev:
		return nil
	default:
		return ErrSlowConsumer
	}
}

func (c *StreamConn) Events() <-chan Event {
	return c.ch
}

// Done reports closure, whether by the gateway's teardown or by the
// hub pruning a slow consumer. The gateway selects on it so a pruned
// stream stops instead of idling on heartbeats.
func (c *StreamConn) Done() <-chan struct{} {
	return c.done
}

// Close is idempotent; the gateway defers it and write-failure paths
// may reach it a second time.
func (c *StreamConn) Close() {
	c.once.Do(func() {
		close(c.done)
	})
}
