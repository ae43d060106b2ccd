package queue

import (
	"context"
	"errors"
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/history"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/monitoring"
)

type CompleteEntry struct {
	repo      domain.Repository
	audit     AuditSink
	publisher ChangePublisher
}

func NewCompleteEntry(
	repo domain.Repository,
	audit AuditSink,
	publisher ChangePublisher,
) *CompleteEntry {
	return &CompleteEntry{
		repo:      repo,
		audit:     audit,
		publisher: publisher,
	}
}

func (uc *CompleteEntry) Execute(
	ctx context.Context,
	actorID uint,
	entryID uint,
) (entry *models.QueueEntry, err error) {

	defer func() { monitoring.RecordTransition("complete", err) }()

	entry, err = uc.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("entry_not_found")
		}
		return nil, err
	}

	now := time.Now()
	if err = domain.Complete(entry, now); err != nil {
		return nil, err
	}

	outbox, err := uc.buildOutbox(ctx, entry, now)
	if err != nil {
		return nil, err
	}

	// the completed status and its pending history row are one unit
	if err = uc.repo.CompleteEntry(ctx, entry, outbox); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "queue_entry_completed",
		Entity:   "queue_entry",
		EntityID: &entry.ID,
	})

	uc.publisher.QueueChanged(ctx)

	return entry, nil
}

func (uc *CompleteEntry) buildOutbox(
	ctx context.Context,
	entry *models.QueueEntry,
	now time.Time,
) (*models.HistoryOutbox, error) {

	selections, err := uc.repo.ListSelections(ctx, entry.ID)
	if err != nil {
		return nil, err
	}

	visit := history.Visit{
		QueueEntryID: entry.ID,
		UserID:       entry.UserID,
		BarberID:     entry.BarberID,
		ServedAt:     now,
	}

	for _, sel := range selections {
		visit.Total += sel.Service.Price
		visit.Services = append(visit.Services, history.VisitItem{
			ServiceID: sel.ServiceID,
			Name:      sel.Service.Name,
			Price:     sel.Service.Price,
			Extra:     sel.Extra,
		})
	}

	payload, err := json.Marshal(visit)
	if err != nil {
		return nil, err
	}

	return &models.HistoryOutbox{
		QueueEntryID: entry.ID,
		Payload:      string(payload),
		Status:       models.OutboxPending,
	}, nil
}
