package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"sportku_backend/internals/features/feedback/model"
)

type CreateFeedbackRequest struct {
	Message string `json:"message" validate:"required,min=5,max=2000"`
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

func (r *CreateFeedbackRequest) Normalize() {
	r.Message = strings.TrimSpace(r.Message)
}

func (r *CreateFeedbackRequest) ToModel(userID uuid.UUID) *model.FeedbackModel {
	return &model.FeedbackModel{
		UserID:  userID,
		Message: r.Message,
		Rating:  r.Rating,
	}
}

type FeedbackResponse struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func FromModel(m *model.FeedbackModel) FeedbackResponse {
	return FeedbackResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		Message:   m.Message,
		Rating:    m.Rating,
		CreatedAt: m.CreatedAt,
	}
}
