package model

import (
	"time"

	"github.com/google/uuid"
)

type FeedbackModel struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID  uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Message string    `gorm:"type:text;not null" json:"message"`
	Rating  *int      `gorm:"type:smallint" json:"rating,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (FeedbackModel) TableName() string {
	return "user_feedback"
}
