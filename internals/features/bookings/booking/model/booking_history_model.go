package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingHistoryModel keeps archived rows out of the hot bookings table.
// No unique index here: the same seat can legitimately repeat across days.
type BookingHistoryModel struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SportID uuid.UUID `gorm:"type:uuid;not null" json:"sport_id"`
	SlotID  uuid.UUID `gorm:"type:uuid;not null" json:"slot_id"`

	BookingDate string `gorm:"type:date;not null" json:"booking_date"`
	SeatNumber  int    `gorm:"not null" json:"seat_number"`

	Status       string     `gorm:"type:varchar(15);not null" json:"status"`
	CheckedInAt  *time.Time `gorm:"type:timestamptz" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"type:timestamptz" json:"checked_out_at,omitempty"`

	CreatedAt  time.Time `json:"created_at"`
	ArchivedAt time.Time `gorm:"autoCreateTime" json:"archived_at"`
}

func (BookingHistoryModel) TableName() string {
	return "bookings_history"
}
