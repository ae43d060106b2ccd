package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-queue/internal/domain/queue"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type QueueGormRepository struct {
	db *gorm.DB
}

func NewQueueGormRepository(db *gorm.DB) *QueueGormRepository {
	return &QueueGormRepository{db: db}
}

// asDomainErr keeps missing-record and store-failure errors apart so
// callers never report an outage as a 404.
func asDomainErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// --------------------------------------------------
// User / Barber / Service
// --------------------------------------------------

func (r *QueueGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, asDomainErr(err)
	}
	return &user, nil
}

func (r *QueueGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, asDomainErr(err)
	}
	return &barber, nil
}

func (r *QueueGormRepository) ListServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = ?", ids, true).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Queue entry (create / lookup)
// --------------------------------------------------

func (r *QueueGormRepository) CreateEntry(
	ctx context.Context,
	entry *models.QueueEntry,
) error {
	// gorm persists the entry and its selections in one transaction
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *QueueGormRepository) GetEntryByID(
	ctx context.Context,
	id uint,
) (*models.QueueEntry, error) {

	var entry models.QueueEntry
	if err := r.db.WithContext(ctx).First(&entry, id).Error; err != nil {
		return nil, asDomainErr(err)
	}
	return &entry, nil
}

func (r *QueueGormRepository) HasActiveEntryForUser(
	ctx context.Context,
	userID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.QueueEntry{}).
		Where(
			"user_id = ? AND status IN ?",
			userID,
			[]string{string(domain.StatusWaiting), string(domain.StatusInProgress)},
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

// --------------------------------------------------
// Queue entry (state change)
// --------------------------------------------------

func (r *QueueGormRepository) UpdateEntry(
	ctx context.Context,
	entry *models.QueueEntry,
) error {
	return r.db.WithContext(ctx).
		Omit("Services", "User", "Barber").
		Save(entry).Error
}

// CancelEntry flips the status and removes the service selections.
// Either both writes land or neither does; an entry must never end
// up canceled with billable rows left behind.
func (r *QueueGormRepository) CancelEntry(
	ctx context.Context,
	entry *models.QueueEntry,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Omit("Services", "User", "Barber").
			Save(entry).Error; err != nil {
			return err
		}

		return tx.
			Where("queue_entry_id = ?", entry.ID).
			Delete(&models.QueueService{}).Error
	})
}

// CompleteEntry flips the status and stages the history delivery in
// the same transaction, so a committed completion always has its
// outbox row.
func (r *QueueGormRepository) CompleteEntry(
	ctx context.Context,
	entry *models.QueueEntry,
	outbox *models.HistoryOutbox,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Omit("Services", "User", "Barber").
			Save(entry).Error; err != nil {
			return err
		}

		return tx.Create(outbox).Error
	})
}

// --------------------------------------------------
// Read model
// --------------------------------------------------

// ListActiveEntries is the enriched active-queue view: open entries
// on active barbers' lines only, grouped per barber, freshest update
// first within a group.
func (r *QueueGormRepository) ListActiveEntries(
	ctx context.Context,
) ([]models.QueueEntry, error) {

	activeBarbers := r.db.
		Model(&models.Barber{}).
		Select("id").
		Where("status = ?", models.BarberActive)

	var entries []models.QueueEntry
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Barber").
		Preload("Services.Service").
		Where(
			"status IN ? AND barber_id IN (?)",
			[]string{string(domain.StatusWaiting), string(domain.StatusInProgress)},
			activeBarbers,
		).
		Order("barber_id ASC, updated_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *QueueGormRepository) ListSelections(
	ctx context.Context,
	entryID uint,
) ([]models.QueueService, error) {

	var selections []models.QueueService
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("queue_entry_id = ?", entryID).
		Find(&selections).Error; err != nil {
		return nil, err
	}

	return selections, nil
}

// Compile-time check
var _ domain.Repository = (*QueueGormRepository)(nil)
