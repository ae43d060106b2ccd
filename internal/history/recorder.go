package history

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

// Visit is the billing/history payload carried through the outbox.
type Visit struct {
	QueueEntryID uint        `json:"queue_entry_id"`
	UserID       uint        `json:"user_id"`
	BarberID     uint        `json:"barber_id"`
	Total        float64     `json:"total"`
	Services     []VisitItem `json:"services"`
	ServedAt     time.Time   `json:"served_at"`
}

type VisitItem struct {
	ServiceID uint    `json:"service_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Extra     bool    `json:"extra"`
}

// Recorder is the history/billing collaborator contract. Record must
// be idempotent per queue entry: the outbox delivers at least once.
type Recorder interface {
	Record(ctx context.Context, v Visit) error
}

// GormRecorder keeps the visit history in our own store.
type GormRecorder struct {
	db *gorm.DB
}

func NewGormRecorder(db *gorm.DB) *GormRecorder {
	return &GormRecorder{db: db}
}

func (r *GormRecorder) Record(ctx context.Context, v Visit) error {
	services, err := json.Marshal(v.Services)
	if err != nil {
		return err
	}

	record := models.VisitRecord{
		QueueEntryID: v.QueueEntryID,
		UserID:       v.UserID,
		BarberID:     v.BarberID,
		Total:        v.Total,
		Services:     string(services),
		ServedAt:     v.ServedAt,
	}

	// Retries of an already-recorded visit are silent no-ops.
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "queue_entry_id"}},
			DoNothing: true,
		}).
		Create(&record).Error
}

var _ Recorder = (*GormRecorder)(nil)
