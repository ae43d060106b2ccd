package history

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/monitoring"
)

// OutboxStore is the persistence slice the worker needs; the gorm
// implementation lives in internal/infra/repository.
type OutboxStore interface {
	ListPending(ctx context.Context, limit int) ([]models.HistoryOutbox, error)
	MarkSent(ctx context.Context, id uint) error
	MarkFailed(ctx context.Context, id uint, attempts int, lastError string) error
	MarkDead(ctx context.Context, id uint, attempts int, lastError string) error
}

// Worker drains pending history_outbox rows into the Recorder.
// Rows stay pending across failures and restarts; after MaxAttempts
// they are parked as dead for an operator instead of silently lost.
type Worker struct {
	store       OutboxStore
	recorder    Recorder
	interval    time.Duration
	batchSize   int
	maxAttempts int
}

func NewWorker(store OutboxStore, recorder Recorder, interval time.Duration) *Worker {
	return &Worker{
		store:       store,
		recorder:    recorder,
		interval:    interval,
		batchSize:   50,
		maxAttempts: 10,
	}
}

// Run polls until ctx is canceled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ProcessPending(ctx)
		}
	}
}

// ProcessPending delivers one batch. Exported so the wiring can run
// a drain on demand.
func (w *Worker) ProcessPending(ctx context.Context) {
	rows, err := w.store.ListPending(ctx, w.batchSize)
	if err != nil {
		log.Println("history: listing outbox:", err)
		return
	}

	for _, row := range rows {
		err := w.deliver(ctx, row)
		monitoring.RecordOutboxDelivery(err)

		if err == nil {
			if err := w.store.MarkSent(ctx, row.ID); err != nil {
				log.Println("history: marking outbox sent:", err)
			}
			continue
		}

		attempts := row.Attempts + 1
		log.Printf("history: delivery of entry %d failed (attempt %d): %v",
			row.QueueEntryID, attempts, err)

		if attempts >= w.maxAttempts {
			// operator territory now; keep the row, stop retrying
			log.Printf("history: entry %d parked as dead after %d attempts",
				row.QueueEntryID, attempts)
			if err := w.store.MarkDead(ctx, row.ID, attempts, err.Error()); err != nil {
				log.Println("history: marking outbox dead:", err)
			}
			continue
		}

		if err := w.store.MarkFailed(ctx, row.ID, attempts, err.Error()); err != nil {
			log.Println("history: marking outbox failed:", err)
		}
	}
}

func (w *Worker) deliver(ctx context.Context, row models.HistoryOutbox) error {
	var visit Visit
	if err := json.Unmarshal([]byte(row.Payload), &visit); err != nil {
		return fmt.Errorf("corrupt payload: %w", err)
	}

	return w.recorder.Record(ctx, visit)
}
