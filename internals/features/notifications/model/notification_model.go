package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NotificationModel struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title string    `gorm:"type:varchar(120);not null" json:"title"`
	Body  string    `gorm:"type:text;not null" json:"body"`

	// general | maintenance | urgent
	Type     string `gorm:"type:varchar(20);not null;default:'general'" json:"type"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	// Optional payload for the client, e.g. {"link": "/book/<sport_id>"}.
	Data datatypes.JSONMap `gorm:"type:jsonb" json:"data,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}
