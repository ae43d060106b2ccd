package queue

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/monitoring"
)

type CancelEntry struct {
	repo      domain.Repository
	audit     AuditSink
	publisher ChangePublisher
}

func NewCancelEntry(
	repo domain.Repository,
	audit AuditSink,
	publisher ChangePublisher,
) *CancelEntry {
	return &CancelEntry{
		repo:      repo,
		audit:     audit,
		publisher: publisher,
	}
}

func (uc *CancelEntry) Execute(
	ctx context.Context,
	actorID uint,
	entryID uint,
) (entry *models.QueueEntry, err error) {

	defer func() { monitoring.RecordTransition("cancel", err) }()

	entry, err = uc.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("entry_not_found")
		}
		return nil, err
	}

	if err = domain.Cancel(entry, time.Now()); err != nil {
		return nil, err
	}

	// status flip + selection cleanup commit together
	if err = uc.repo.CancelEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "queue_entry_canceled",
		Entity:   "queue_entry",
		EntityID: &entry.ID,
	})

	uc.publisher.QueueChanged(ctx)

	return entry, nil
}
