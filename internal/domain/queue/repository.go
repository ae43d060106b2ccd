package queue

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// ErrNotFound marks a lookup miss. Implementations return it for an
// id that does not exist; any other error is a store failure and
// must not be confused with a missing record.
var ErrNotFound = errors.New("record not found")

type Repository interface {
	// -------- User --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Barber --------
	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Service --------
	ListServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Queue entry (create / lookup) --------
	CreateEntry(
		ctx context.Context,
		entry *models.QueueEntry,
	) error

	GetEntryByID(
		ctx context.Context,
		id uint,
	) (*models.QueueEntry, error)

	HasActiveEntryForUser(
		ctx context.Context,
		userID uint,
	) (bool, error)

	// -------- Queue entry (state change) --------
	UpdateEntry(
		ctx context.Context,
		entry *models.QueueEntry,
	) error

	// Status change + service-selection deletion in one transaction.
	CancelEntry(
		ctx context.Context,
		entry *models.QueueEntry,
	) error

	// Status change + outbox row in one transaction.
	CompleteEntry(
		ctx context.Context,
		entry *models.QueueEntry,
		outbox *models.HistoryOutbox,
	) error

	// -------- Read model --------
	ListActiveEntries(
		ctx context.Context,
	) ([]models.QueueEntry, error)

	ListSelections(
		ctx context.Context,
		entryID uint,
	) ([]models.QueueService, error)
}
