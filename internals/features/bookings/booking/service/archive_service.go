package service

import (
	"gorm.io/gorm"
)

// ArchiveAll moves every booking row into bookings_history and empties the
// bookings table, inside one transaction so the grid never shows a row
// twice or loses one.
func ArchiveAll(db *gorm.DB) (int64, error) {
	var moved int64
	err := db.Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(`
			INSERT INTO bookings_history
				(id, user_id, sport_id, slot_id, booking_date, seat_number,
				 status, checked_in_at, checked_out_at, created_at, archived_at)
			SELECT id, user_id, sport_id, slot_id, booking_date, seat_number,
			       status, checked_in_at, checked_out_at, created_at, NOW()
			FROM bookings
		`)
		if res.Error != nil {
			return res.Error
		}
		moved = res.RowsAffected
		return tx.Exec(`DELETE FROM bookings`).Error
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}
