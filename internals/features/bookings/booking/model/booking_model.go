package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingModel is one user's claim on one seat for one sport/slot/date.
// The composite unique index is the only thing preventing double-booking;
// every pre-insert check in the service is advisory.
type BookingModel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SportID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_seat_per_slot_date" json:"sport_id"`
	SlotID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_seat_per_slot_date" json:"slot_id"`

	BookingDate string `gorm:"type:date;not null;uniqueIndex:uq_seat_per_slot_date" json:"booking_date"`
	SeatNumber  int    `gorm:"not null;uniqueIndex:uq_seat_per_slot_date" json:"seat_number"`

	// booked -> checked_in -> checked_out
	Status       string     `gorm:"type:varchar(15);not null;default:'booked'" json:"status"`
	CheckedInAt  *time.Time `gorm:"type:timestamptz" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"type:timestamptz" json:"checked_out_at,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (BookingModel) TableName() string {
	return "bookings"
}
