package models

import "time"

// VisitRecord is the billable history row written when an entry
// completes. One per queue entry; the unique index is what makes
// outbox retries idempotent.
type VisitRecord struct {
	ID uint `gorm:"primaryKey" json:"id"`

	QueueEntryID uint `gorm:"uniqueIndex" json:"queue_entry_id"`
	UserID       uint `json:"user_id"`
	BarberID     uint `json:"barber_id"`

	Total    float64 `json:"total"`
	Services string  `gorm:"type:text" json:"services"`

	ServedAt  time.Time `json:"served_at"`
	CreatedAt time.Time `json:"created_at"`
}
