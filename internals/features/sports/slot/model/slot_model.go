package model

import (
	"time"

	"github.com/google/uuid"
)

// SlotModel is a recurring daily time window for a sport. Times are wall
// clock "HH:MM" strings mapped to Postgres time columns.
type SlotModel struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SportID   uuid.UUID `gorm:"type:uuid;not null;index" json:"sport_id" validate:"required"`
	StartTime string    `gorm:"type:time;not null" json:"start_time" validate:"required"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time" validate:"required"`

	// male | female | any
	GenderRestriction string `gorm:"type:varchar(10);not null;default:'any'" json:"gender_restriction" validate:"omitempty,oneof=male female any"`
	// any | student | faculty
	AllowedUserType string `gorm:"type:varchar(10);not null;default:'any'" json:"allowed_user_type" validate:"omitempty,oneof=any student faculty"`

	IsActive bool `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SlotModel) TableName() string {
	return "slots"
}
