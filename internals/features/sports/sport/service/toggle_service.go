package service

import (
	"gorm.io/gorm"

	"sportku_backend/internals/features/sports/sport/model"
)

// SetAllActive flips every sport's active flag in one bulk UPDATE.
// Deliberately unconditional: the store either applies it atomically or
// rejects it; there is no partial-failure path to compensate for.
func SetAllActive(db *gorm.DB, active bool) (int64, error) {
	res := db.Model(&model.SportModel{}).
		Where("is_active <> ?", active).
		Update("is_active", active)
	return res.RowsAffected, res.Error
}
