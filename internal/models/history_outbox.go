package models

import "time"

// HistoryOutbox rows are written in the same transaction that marks
// an entry completed, so a completion can never commit without its
// pending history delivery.
type HistoryOutbox struct {
	ID uint `gorm:"primaryKey" json:"id"`

	QueueEntryID uint   `gorm:"index" json:"queue_entry_id"`
	Payload      string `gorm:"type:text" json:"payload"`

	Status    string `gorm:"size:20;default:'pending';index" json:"status"`
	Attempts  int    `json:"attempts"`
	LastError string `gorm:"size:255" json:"last_error"`

	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

const (
	OutboxPending = "pending"
	OutboxSent    = "sent"
	OutboxDead    = "dead"
)
