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

type SkipEntry struct {
	repo      domain.Repository
	audit     AuditSink
	publisher ChangePublisher
}

func NewSkipEntry(
	repo domain.Repository,
	audit AuditSink,
	publisher ChangePublisher,
) *SkipEntry {
	return &SkipEntry{
		repo:      repo,
		audit:     audit,
		publisher: publisher,
	}
}

// Execute defers a customer the barber is not ready for: back to
// waiting, repositioned by the bumped update timestamp.
func (uc *SkipEntry) Execute(
	ctx context.Context,
	actorID uint,
	entryID uint,
) (entry *models.QueueEntry, err error) {

	defer func() { monitoring.RecordTransition("skip", err) }()

	entry, err = uc.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("entry_not_found")
		}
		return nil, err
	}

	if err = domain.Skip(entry, time.Now()); err != nil {
		return nil, err
	}

	if err = uc.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "queue_entry_skipped",
		Entity:   "queue_entry",
		EntityID: &entry.ID,
	})

	uc.publisher.QueueChanged(ctx)

	return entry, nil
}
