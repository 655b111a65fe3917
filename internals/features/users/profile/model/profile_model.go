package model

import (
	"time"

	"github.com/google/uuid"
)

// ProfileModel is the application-level record layered on the auth user.
// Role "ban" is terminal for booking and kills the session server-side.
type ProfileModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	FullName string    `gorm:"size:100;not null" json:"full_name" validate:"required,min=3,max=100"`
	Role     string    `gorm:"type:varchar(10);not null;default:'normal'" json:"role" validate:"omitempty,oneof=normal admin ban"`
	UserType string    `gorm:"type:varchar(10);not null" json:"user_type" validate:"required,oneof=student faculty"`
	Course   string    `gorm:"size:100" json:"course"`
	Phone    string    `gorm:"size:20" json:"phone" validate:"omitempty,min=8,max=20"`
	Gender   string    `gorm:"type:varchar(10);not null" json:"gender" validate:"required,oneof=male female"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProfileModel) TableName() string {
	return "profiles"
}
