package history

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type fakeStore struct {
	rows []models.HistoryOutbox

	sent   []uint
	failed []uint
	dead   []uint
}

func (s *fakeStore) ListPending(_ context.Context, limit int) ([]models.HistoryOutbox, error) {
	var out []models.HistoryOutbox
	for _, row := range s.rows {
		if row.Status != models.OutboxPending {
			continue
		}
		out = append(out, row)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeStore) MarkSent(_ context.Context, id uint) error {
	s.sent = append(s.sent, id)
	s.setStatus(id, models.OutboxSent, 0)
	return nil
}

func (s *fakeStore) MarkFailed(_ context.Context, id uint, attempts int, _ string) error {
	s.failed = append(s.failed, id)
	s.setStatus(id, models.OutboxPending, attempts)
	return nil
}

func (s *fakeStore) MarkDead(_ context.Context, id uint, attempts int, _ string) error {
	s.dead = append(s.dead, id)
	s.setStatus(id, models.OutboxDead, attempts)
	return nil
}

func (s *fakeStore) setStatus(id uint, status string, attempts int) {
	for i := range s.rows {
		if s.rows[i].ID == id {
			s.rows[i].Status = status
			if attempts > 0 {
				s.rows[i].Attempts = attempts
			}
		}
	}
}

type fakeRecorder struct {
	recorded []Visit
	fail     bool
}

func (r *fakeRecorder) Record(_ context.Context, v Visit) error {
	if r.fail {
		return errors.New("history backend down")
	}
	r.recorded = append(r.recorded, v)
	return nil
}

func outboxRow(t *testing.T, id, entryID uint) models.HistoryOutbox {
	t.Helper()

	payload, err := json.Marshal(Visit{
		QueueEntryID: entryID,
		UserID:       1,
		BarberID:     2,
		Total:        50,
		ServedAt:     time.Now(),
	})
	require.NoError(t, err)

	return models.HistoryOutbox{
		ID:           id,
		QueueEntryID: entryID,
		Payload:      string(payload),
		Status:       models.OutboxPending,
	}
}

func TestWorkerDeliversPendingRows(t *testing.T) {
	store := &fakeStore{rows: []models.HistoryOutbox{
		outboxRow(t, 1, 100),
		outboxRow(t, 2, 101),
	}}
	recorder := &fakeRecorder{}
	worker := NewWorker(store, recorder, time.Second)

	worker.ProcessPending(context.Background())

	assert.Equal(t, []uint{1, 2}, store.sent)
	require.Len(t, recorder.recorded, 2)
	assert.Equal(t, uint(100), recorder.recorded[0].QueueEntryID)
}

// a failed delivery stays pending; nothing is silently lost
func TestWorkerRetriesFailedDelivery(t *testing.T) {
	store := &fakeStore{rows: []models.HistoryOutbox{outboxRow(t, 1, 100)}}
	recorder := &fakeRecorder{fail: true}
	worker := NewWorker(store, recorder, time.Second)

	worker.ProcessPending(context.Background())

	assert.Equal(t, []uint{1}, store.failed)
	assert.Empty(t, store.sent)
	assert.Equal(t, models.OutboxPending, store.rows[0].Status)

	// backend recovers: the next pass delivers the same row
	recorder.fail = false
	worker.ProcessPending(context.Background())

	assert.Equal(t, []uint{1}, store.sent)
	require.Len(t, recorder.recorded, 1)
}

func TestWorkerParksRowAfterMaxAttempts(t *testing.T) {
	row := outboxRow(t, 1, 100)
	store := &fakeStore{rows: []models.HistoryOutbox{row}}
	recorder := &fakeRecorder{fail: true}
	worker := NewWorker(store, recorder, time.Second)

	for i := 0; i < worker.maxAttempts; i++ {
		worker.ProcessPending(context.Background())
	}

	assert.Equal(t, []uint{1}, store.dead)
	assert.Equal(t, models.OutboxDead, store.rows[0].Status)

	// a dead row never comes back on its own
	worker.ProcessPending(context.Background())
	assert.Len(t, store.dead, 1)
}

func TestWorkerParksCorruptPayload(t *testing.T) {
	store := &fakeStore{rows: []models.HistoryOutbox{{
		ID:      1,
		Payload: "not json",
		Status:  models.OutboxPending,
	}}}
	recorder := &fakeRecorder{}
	worker := NewWorker(store, recorder, time.Second)

	worker.ProcessPending(context.Background())

	assert.Empty(t, store.sent)
	assert.Equal(t, []uint{1}, store.failed)
	assert.Empty(t, recorder.recorded)
}
