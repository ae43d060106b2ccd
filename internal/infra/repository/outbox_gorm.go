package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-queue/internal/history"
	"github.com/BruksfildServices01/barber-queue/internal/models"
)

type OutboxGormStore struct {
	db *gorm.DB
}

func NewOutboxGormStore(db *gorm.DB) *OutboxGormStore {
	return &OutboxGormStore{db: db}
}

func (s *OutboxGormStore) ListPending(
	ctx context.Context,
	limit int,
) ([]models.HistoryOutbox, error) {

	var rows []models.HistoryOutbox
	if err := s.db.WithContext(ctx).
		Where("status = ?", models.OutboxPending).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func (s *OutboxGormStore) MarkSent(ctx context.Context, id uint) error {
	now := time.Now()
	return s.db.WithContext(ctx).
		Model(&models.HistoryOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":  models.OutboxSent,
			"sent_at": &now,
		}).Error
}

func (s *OutboxGormStore) MarkFailed(
	ctx context.Context,
	id uint,
	attempts int,
	lastError string,
) error {
	return s.db.WithContext(ctx).
		Model(&models.HistoryOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}

func (s *OutboxGormStore) MarkDead(
	ctx context.Context,
	id uint,
	attempts int,
	lastError string,
) error {
	return s.db.WithContext(ctx).
		Model(&models.HistoryOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":     models.OutboxDead,
			"attempts":   attempts,
			"last_error": lastError,
		}).Error
}

// Compile-time check
var _ history.OutboxStore = (*OutboxGormStore)(nil)
