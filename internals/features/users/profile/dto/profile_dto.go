package dto

import (
	"strings"

	"github.com/google/uuid"

	pModel "sportku_backend/internals/features/users/profile/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

// CreateProfileRequest — first onboarding submission after signup
type CreateProfileRequest struct {
	FullName string `json:"full_name" validate:"required,min=3,max=100"`
	UserType string `json:"user_type" validate:"required,oneof=student faculty"`
	Course   string `json:"course" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,min=8,max=20"`
	Gender   string `json:"gender" validate:"required,oneof=male female"`
}

func (r *CreateProfileRequest) Normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.UserType = strings.ToLower(strings.TrimSpace(r.UserType))
	r.Course = strings.TrimSpace(r.Course)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Gender = strings.ToLower(strings.TrimSpace(r.Gender))
}

func (r *CreateProfileRequest) ToModel(userID uuid.UUID) *pModel.ProfileModel {
	return &pModel.ProfileModel{
		UserID:   userID,
		FullName: r.FullName,
		UserType: r.UserType,
		Course:   r.Course,
		Phone:    r.Phone,
		Gender:   r.Gender,
	}
}

// UpdateProfileRequest — partial update (pointers distinguish omit vs null)
type UpdateProfileRequest struct {
	FullName *string `json:"full_name,omitempty" validate:"omitempty,min=3,max=100"`
	Course   *string `json:"course,omitempty" validate:"omitempty,max=100"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=8,max=20"`
}

func (r *UpdateProfileRequest) Normalize() {
	if r.FullName != nil {
		v := strings.TrimSpace(*r.FullName)
		r.FullName = &v
	}
	if r.Course != nil {
		v := strings.TrimSpace(*r.Course)
		r.Course = &v
	}
	if r.Phone != nil {
		v := strings.TrimSpace(*r.Phone)
		r.Phone = &v
	}
}

// Updates builds the column map for a partial UPDATE.
func (r *UpdateProfileRequest) Updates() map[string]any {
	out := map[string]any{}
	if r.FullName != nil {
		out["full_name"] = *r.FullName
	}
	if r.Course != nil {
		out["course"] = *r.Course
	}
	if r.Phone != nil {
		out["phone"] = *r.Phone
	}
	return out
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type ProfileResponse struct {
	ID       uuid.UUID `json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	UserType string    `json:"user_type"`
	Course   string    `json:"course"`
	Phone    string    `json:"phone"`
	Gender   string    `json:"gender"`
}

func FromModel(m *pModel.ProfileModel) ProfileResponse {
	return ProfileResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		FullName: m.FullName,
		Role:     m.Role,
		UserType: m.UserType,
		Course:   m.Course,
		Phone:    m.Phone,
		Gender:   m.Gender,
	}
}
