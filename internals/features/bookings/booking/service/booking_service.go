package service

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"sportku_backend/internals/constants"
	bookingModel "sportku_backend/internals/features/bookings/booking/model"
	slotModel "sportku_backend/internals/features/sports/slot/model"
	sportModel "sportku_backend/internals/features/sports/sport/model"
	helper "sportku_backend/internals/helpers"

	"github.com/google/uuid"
)

// CancelCutoff is how long before slot start cancellation closes.
// A booking is cancellable only while now < start - CancelCutoff.
const CancelCutoff = 30 * time.Minute

var (
	ErrSportInactive      = errors.New("sport is not available")
	ErrSlotInactive       = errors.New("slot is not available")
	ErrSlotMismatch       = errors.New("slot does not belong to this sport")
	ErrGenderNotAllowed   = errors.New("this slot is restricted to another gender")
	ErrUserTypeNotAllowed = errors.New("this slot is restricted to another user type")
	ErrSeatOutOfRange     = errors.New("seat number is out of range")
	ErrSeatTaken          = errors.New("seat was just booked by someone else")
	ErrSlotStarted        = errors.New("this slot has already started")
	ErrAlreadyBooked      = errors.New("you already have a booking for this slot today")
	ErrCancelWindowClosed = errors.New("cancellation is closed 30 minutes before the slot starts")
	ErrNotOwner           = errors.New("booking belongs to another user")
	ErrBadTransition      = errors.New("booking is not in the right state for this action")
	ErrNotFound           = errors.New("booking not found")
)

// SlotStartOn combines a booking date (YYYY-MM-DD) with a slot start time
// in the given location. Postgres TIME columns scan back as "18:00:00",
// while the DTOs store "18:00"; both forms are accepted.
func SlotStartOn(bookingDate, startTime string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{"2006-01-02 15:04:05", "2006-01-02 15:04"} {
		if t, err := time.ParseInLocation(layout, bookingDate+" "+startTime, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid slot start %q on %q", startTime, bookingDate)
}

// CanCancel reports whether a booking may still be cancelled at `now`.
// The window closes at exactly start - CancelCutoff: at T-30 it is closed.
func CanCancel(now, slotStart time.Time) bool {
	return now.Before(slotStart.Add(-CancelCutoff))
}

// CheckEligibility enforces a slot's gender and user-type restrictions.
func CheckEligibility(slot *slotModel.SlotModel, gender, userType string) error {
	if slot.GenderRestriction != constants.RestrictionAny && slot.GenderRestriction != gender {
		return ErrGenderNotAllowed
	}
	if slot.AllowedUserType != constants.RestrictionAny && slot.AllowedUserType != userType {
		return ErrUserTypeNotAllowed
	}
	return nil
}

type CreateParams struct {
	UserID      uuid.UUID
	SportID     uuid.UUID
	SlotID      uuid.UUID
	BookingDate string
	SeatNumber  int
	Gender      string
	UserType    string
	Now         time.Time
	Loc         *time.Location
}

// CreateBooking runs the advisory checks and inserts the row. The unique
// index is the real arbiter: a 23505 from the insert becomes ErrSeatTaken
// no matter what the pre-checks saw.
func CreateBooking(db *gorm.DB, p CreateParams) (*bookingModel.BookingModel, error) {
	var sport sportModel.SportModel
	if err := db.First(&sport, "id = ?", p.SportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSportInactive
		}
		return nil, err
	}
	if !sport.IsActive {
		return nil, ErrSportInactive
	}

	var slot slotModel.SlotModel
	if err := db.First(&slot, "id = ?", p.SlotID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotInactive
		}
		return nil, err
	}
	if !slot.IsActive {
		return nil, ErrSlotInactive
	}
	if slot.SportID != p.SportID {
		return nil, ErrSlotMismatch
	}

	if err := CheckEligibility(&slot, p.Gender, p.UserType); err != nil {
		return nil, err
	}
	if p.SeatNumber < 1 || p.SeatNumber > sport.Capacity {
		return nil, ErrSeatOutOfRange
	}

	start, err := SlotStartOn(p.BookingDate, slot.StartTime, p.Loc)
	if err != nil {
		return nil, err
	}
	if !p.Now.Before(start) {
		return nil, ErrSlotStarted
	}

	// One booking per user per slot per day.
	var mine int64
	if err := db.Model(&bookingModel.BookingModel{}).
		Where("user_id = ? AND slot_id = ? AND booking_date = ?", p.UserID, p.SlotID, p.BookingDate).
		Count(&mine).Error; err != nil {
		return nil, err
	}
	if mine > 0 {
		return nil, ErrAlreadyBooked
	}

	row := bookingModel.BookingModel{
		UserID:      p.UserID,
		SportID:     p.SportID,
		SlotID:      p.SlotID,
		BookingDate: p.BookingDate,
		SeatNumber:  p.SeatNumber,
		Status:      constants.BookingStatusBooked,
	}
	if err := db.Create(&row).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return nil, ErrSeatTaken
		}
		return nil, err
	}
	return &row, nil
}

// CancelBooking deletes the caller's booking if the cutoff has not passed.
func CancelBooking(db *gorm.DB, bookingID, userID uuid.UUID, now time.Time, loc *time.Location) (*bookingModel.BookingModel, error) {
	var row bookingModel.BookingModel
	if err := db.First(&row, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if row.UserID != userID {
		return nil, ErrNotOwner
	}
	if row.Status != constants.BookingStatusBooked {
		return nil, ErrBadTransition
	}

	var slot slotModel.SlotModel
	if err := db.First(&slot, "id = ?", row.SlotID).Error; err != nil {
		return nil, err
	}
	start, err := SlotStartOn(row.BookingDate, slot.StartTime, loc)
	if err != nil {
		return nil, err
	}
	if !CanCancel(now, start) {
		return nil, ErrCancelWindowClosed
	}

	if err := db.Delete(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CheckIn moves booked -> checked_in for the caller's booking.
func CheckIn(db *gorm.DB, bookingID, userID uuid.UUID, now time.Time) (*bookingModel.BookingModel, error) {
	return transition(db, bookingID, userID, constants.BookingStatusBooked, constants.BookingStatusCheckedIn, now)
}

// CheckOut moves checked_in -> checked_out for the caller's booking.
func CheckOut(db *gorm.DB, bookingID, userID uuid.UUID, now time.Time) (*bookingModel.BookingModel, error) {
	return transition(db, bookingID, userID, constants.BookingStatusCheckedIn, constants.BookingStatusCheckedOut, now)
}

// AdminCheckIn advances any user's booking to checked_in; used by the
// desk when scanning a booking QR.
func AdminCheckIn(db *gorm.DB, bookingID uuid.UUID, now time.Time) (*bookingModel.BookingModel, error) {
	return transition(db, bookingID, uuid.Nil, constants.BookingStatusBooked, constants.BookingStatusCheckedIn, now)
}

// AdminCheckOut advances any user's booking to checked_out.
func AdminCheckOut(db *gorm.DB, bookingID uuid.UUID, now time.Time) (*bookingModel.BookingModel, error) {
	return transition(db, bookingID, uuid.Nil, constants.BookingStatusCheckedIn, constants.BookingStatusCheckedOut, now)
}

// transition enforces the legal status order. A Nil userID skips the
// owner check (admin scan path); the from/to guard always applies.
func transition(db *gorm.DB, bookingID, userID uuid.UUID, from, to string, now time.Time) (*bookingModel.BookingModel, error) {
	var row bookingModel.BookingModel
	if err := db.First(&row, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if userID != uuid.Nil && row.UserID != userID {
		return nil, ErrNotOwner
	}
	if row.Status != from {
		return nil, ErrBadTransition
	}

	updates := map[string]interface{}{"status": to}
	switch to {
	case constants.BookingStatusCheckedIn:
		updates["checked_in_at"] = now
		row.CheckedInAt = &now
	case constants.BookingStatusCheckedOut:
		updates["checked_out_at"] = now
		row.CheckedOutAt = &now
	}
	if err := db.Model(&row).Updates(updates).Error; err != nil {
		return nil, err
	}
	row.Status = to
	return &row, nil
}
