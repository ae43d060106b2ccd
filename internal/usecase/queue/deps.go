package queue

import (
	"github.com/BruksfildServices01/barber-queue/internal/audit"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
)

// The mutation engine only ever *emits* toward audit and messaging;
// narrow sinks keep it constructible in tests without a database or
// a delivery gateway behind them.

type AuditSink interface {
	Dispatch(audit.Event)
}

type MessageSink interface {
	Dispatch(notify.Message)
}
