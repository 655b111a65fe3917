package model

import (
	"time"

	"github.com/google/uuid"
)

// SportModel is one bookable activity. Deactivating hides it from booking
// without deleting history.
type SportModel struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null;unique" json:"name" validate:"required,min=2,max=100"`
	ImageURL string    `gorm:"type:text" json:"image_url"`
	Capacity int       `gorm:"not null" json:"capacity" validate:"required,min=1,max=500"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (SportModel) TableName() string {
	return "sports"
}
