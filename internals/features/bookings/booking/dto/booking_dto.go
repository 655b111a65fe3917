package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sportku_backend/internals/features/bookings/booking/model"
)

type CreateBookingRequest struct {
	SportID     uuid.UUID `json:"sport_id" validate:"required"`
	SlotID      uuid.UUID `json:"slot_id" validate:"required"`
	BookingDate string    `json:"booking_date" validate:"required"`
	SeatNumber  int       `json:"seat_number" validate:"required,min=1"`
}

func (r *CreateBookingRequest) Normalize() {
	r.BookingDate = strings.TrimSpace(r.BookingDate)
}

// ValidateDate accepts YYYY-MM-DD only.
func (r *CreateBookingRequest) ValidateDate() error {
	_, err := time.Parse("2006-01-02", r.BookingDate)
	return err
}

type BookingResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	SportID      uuid.UUID  `json:"sport_id"`
	SlotID       uuid.UUID  `json:"slot_id"`
	BookingDate  string     `json:"booking_date"`
	SeatNumber   int        `json:"seat_number"`
	Status       string     `json:"status"`
	CheckedInAt  *time.Time `json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `json:"checked_out_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromModel(m *model.BookingModel) BookingResponse {
	return BookingResponse{
		ID:           m.ID,
		UserID:       m.UserID,
		SportID:      m.SportID,
		SlotID:       m.SlotID,
		BookingDate:  m.BookingDate,
		SeatNumber:   m.SeatNumber,
		Status:       m.Status,
		CheckedInAt:  m.CheckedInAt,
		CheckedOutAt: m.CheckedOutAt,
		CreatedAt:    m.CreatedAt,
	}
}

// SeatStatus is one cell of the occupancy grid.
type SeatStatus struct {
	SeatNumber int    `json:"seat_number"`
	Status     string `json:"status"` // free | booked | checked_in | checked_out
	Mine       bool   `json:"mine"`
}
