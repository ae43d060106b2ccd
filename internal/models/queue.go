package models

import "time"

type QueueEntry struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"user"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	Status string `gorm:"size:20;default:'waiting'" json:"status"`

	Services []QueueService `gorm:"foreignKey:QueueEntryID" json:"services"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QueueService links an entry to one catalog service picked for the
// visit. Rows are hard-deleted when the entry is canceled and kept
// when it completes (the visit record needs them).
type QueueService struct {
	ID uint `gorm:"primaryKey" json:"id"`

	QueueEntryID uint `gorm:"index" json:"queue_entry_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Extra bool `gorm:"default:false" json:"extra"`

	CreatedAt time.Time `json:"created_at"`
}
