package dto

import (
	"strings"

	"github.com/google/uuid"

	sModel "sportku_backend/internals/features/sports/sport/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateSportRequest struct {
	Name     string `json:"name" form:"name" validate:"required,min=2,max=100"`
	Capacity int    `json:"capacity" form:"capacity" validate:"required,min=1,max=500"`
	IsActive *bool  `json:"is_active,omitempty" form:"is_active"`
}

func (r *CreateSportRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

func (r *CreateSportRequest) ToModel() *sModel.SportModel {
	m := &sModel.SportModel{
		Name:     r.Name,
		Capacity: r.Capacity,
		IsActive: true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

type UpdateSportRequest struct {
	Name     *string `json:"name,omitempty" form:"name" validate:"omitempty,min=2,max=100"`
	Capacity *int    `json:"capacity,omitempty" form:"capacity" validate:"omitempty,min=1,max=500"`
	IsActive *bool   `json:"is_active,omitempty" form:"is_active"`
}

func (r *UpdateSportRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
}

func (r *UpdateSportRequest) Updates() map[string]any {
	out := map[string]any{}
	if r.Name != nil {
		out["name"] = *r.Name
	}
	if r.Capacity != nil {
		out["capacity"] = *r.Capacity
	}
	if r.IsActive != nil {
		out["is_active"] = *r.IsActive
	}
	return out
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type SportResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url"`
	Capacity int       `json:"capacity"`
	IsActive bool      `json:"is_active"`
}

func FromModel(m *sModel.SportModel) SportResponse {
	return SportResponse{
		ID:       m.ID,
		Name:     m.Name,
		ImageURL: m.ImageURL,
		Capacity: m.Capacity,
		IsActive: m.IsActive,
	}
}
