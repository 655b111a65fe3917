package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"sportku_backend/internals/constants"
	"sportku_backend/internals/features/notifications/model"
)

type CreateNotificationRequest struct {
	Title string                 `json:"title" validate:"required,min=3,max=120"`
	Body  string                 `json:"body" validate:"required,min=3"`
	Type  string                 `json:"type" validate:"omitempty,oneof=general maintenance urgent"`
	Data  map[string]interface{} `json:"data"`
}

func (r *CreateNotificationRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Body = strings.TrimSpace(r.Body)
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	if r.Type == "" {
		r.Type = constants.NotificationGeneral
	}
}

func (r *CreateNotificationRequest) ToModel() *model.NotificationModel {
	return &model.NotificationModel{
		Title:    r.Title,
		Body:     r.Body,
		Type:     r.Type,
		IsActive: true,
		Data:     datatypes.JSONMap(r.Data),
	}
}

type UpdateNotificationRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=3,max=120"`
	Body     *string `json:"body" validate:"omitempty,min=3"`
	Type     *string `json:"type" validate:"omitempty,oneof=general maintenance urgent"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateNotificationRequest) Updates() map[string]interface{} {
	out := map[string]interface{}{}
	if r.Title != nil {
		out["title"] = strings.TrimSpace(*r.Title)
	}
	if r.Body != nil {
		out["body"] = strings.TrimSpace(*r.Body)
	}
	if r.Type != nil {
		out["type"] = strings.ToLower(strings.TrimSpace(*r.Type))
	}
	if r.IsActive != nil {
		out["is_active"] = *r.IsActive
	}
	return out
}

type NotificationResponse struct {
	ID        uuid.UUID         `json:"id"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Type      string            `json:"type"`
	IsActive  bool              `json:"is_active"`
	Data      datatypes.JSONMap `json:"data,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func FromModel(m *model.NotificationModel) NotificationResponse {
	return NotificationResponse{
		ID:        m.ID,
		Title:     m.Title,
		Body:      m.Body,
		Type:      m.Type,
		IsActive:  m.IsActive,
		Data:      m.Data,
		CreatedAt: m.CreatedAt,
	}
}
