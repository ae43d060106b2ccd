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
	"github.com/BruksfildServices01/barber-queue/internal/notify"
)

type StartEntry struct {
	repo      domain.Repository
	audit     AuditSink
	publisher ChangePublisher
	messages  MessageSink
}

func NewStartEntry(
	repo domain.Repository,
	audit AuditSink,
	publisher ChangePublisher,
	messages MessageSink,
) *StartEntry {
	return &StartEntry{
		repo:      repo,
		audit:     audit,
		publisher: publisher,
		messages:  messages,
	}
}

func (uc *StartEntry) Execute(
	ctx context.Context,
	actorID uint,
	entryID uint,
) (entry *models.QueueEntry, err error) {

	defer func() { monitoring.RecordTransition("start", err) }()

	entry, err = uc.repo.GetEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("entry_not_found")
		}
		return nil, err
	}

	if err = domain.Start(entry, time.Now()); err != nil {
		return nil, err
	}

	if err = uc.repo.UpdateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "queue_entry_started",
		Entity:   "queue_entry",
		EntityID: &entry.ID,
	})

	// best effort; never on the critical path
	if user, uerr := uc.repo.GetUserByID(ctx, entry.UserID); uerr == nil && user.Phone != "" {
		uc.messages.Dispatch(notify.Message{
			Phone: user.Phone,
			Body:  "É a sua vez! Seu barbeiro está pronto para te atender.",
		})
	}

	uc.publisher.QueueChanged(ctx)

	return entry, nil
}
