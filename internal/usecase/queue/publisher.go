package queue

import "context"

// ChangePublisher is the one capability the mutation engine needs
// from the live-update side: announce, after commit, that the queue
// changed. Keeping it this narrow keeps the state machine testable
// without a hub.
type ChangePublisher interface {
	QueueChanged(ctx context.Context)
}
