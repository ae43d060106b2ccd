package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-queue/internal/audit"
	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/httperr"
	"github.com/BruksfildServices01/barber-queue/internal/models"
	"github.com/BruksfildServices01/barber-queue/internal/monitoring"
	"github.com/BruksfildServices01/barber-queue/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type ServiceSelection struct {
	ServiceID uint
	Extra     bool
}

type CreateEntryInput struct {
	UserID   uint
	BarberID uint
	Services []ServiceSelection
}

// ======================================================
// USE CASE
// ======================================================

type CreateEntry struct {
	repo      domain.Repository
	audit     AuditSink
	publisher ChangePublisher
	messages  MessageSink
}

func NewCreateEntry(
	repo domain.Repository,
	audit AuditSink,
	publisher ChangePublisher,
	messages MessageSink,
) *CreateEntry {
	return &CreateEntry{
		repo:      repo,
		audit:     audit,
		publisher: publisher,
		messages:  messages,
	}
}

func (uc *CreateEntry) Execute(
	ctx context.Context,
	in CreateEntryInput,
) (entry *models.QueueEntry, err error) {

	defer func() { monitoring.RecordTransition("create", err) }()

	if len(in.Services) == 0 {
		return nil, httperr.ErrBusiness("services_required")
	}

	user, err := uc.repo.GetUserByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}

	barber, err := uc.repo.GetBarberByID(ctx, in.BarberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrBusiness("barber_not_found")
		}
		return nil, err
	}
	if barber.Status != models.BarberActive {
		return nil, httperr.ErrBusiness("barber_inactive")
	}

	ids := make([]uint, 0, len(in.Services))
	for _, sel := range in.Services {
		ids = append(ids, sel.ServiceID)
	}

	services, err := uc.repo.ListServicesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(services) != len(ids) {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// one line per customer at a time
	busy, err := uc.repo.HasActiveEntryForUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, httperr.ErrBusiness("already_in_queue")
	}

	selections := make([]models.QueueService, 0, len(in.Services))
	for _, sel := range in.Services {
		selections = append(selections, models.QueueService{
			ServiceID: sel.ServiceID,
			Extra:     sel.Extra,
		})
	}

	entry = &models.QueueEntry{
		UserID:   in.UserID,
		BarberID: in.BarberID,
		Status:   string(domain.InitialStatus()),
		Services: selections,
	}

	if err = uc.repo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "queue_entry_created",
		Entity:   "queue_entry",
		EntityID: &entry.ID,
	})

	if user.Phone != "" {
		uc.messages.Dispatch(notify.Message{
			Phone: user.Phone,
			Body:  fmt.Sprintf("Você entrou na fila do barbeiro %s.", barber.Name),
		})
	}

	uc.publisher.QueueChanged(ctx)

	return entry, nil
}
