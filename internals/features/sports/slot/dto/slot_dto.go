package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	slModel "sportku_backend/internals/features/sports/slot/model"
)

/* =======================================================
   REQUEST DTOs
   ======================================================= */

type CreateSlotRequest struct {
	SportID           uuid.UUID `json:"sport_id" validate:"required"`
	StartTime         string    `json:"start_time" validate:"required"`
	EndTime           string    `json:"end_time" validate:"required"`
	GenderRestriction string    `json:"gender_restriction" validate:"omitempty,oneof=male female any"`
	AllowedUserType   string    `json:"allowed_user_type" validate:"omitempty,oneof=any student faculty"`
	IsActive          *bool     `json:"is_active,omitempty"`
}

func (r *CreateSlotRequest) Normalize() {
	r.StartTime = strings.TrimSpace(r.StartTime)
	r.EndTime = strings.TrimSpace(r.EndTime)
	r.GenderRestriction = strings.ToLower(strings.TrimSpace(r.GenderRestriction))
	r.AllowedUserType = strings.ToLower(strings.TrimSpace(r.AllowedUserType))
	if r.GenderRestriction == "" {
		r.GenderRestriction = "any"
	}
	if r.AllowedUserType == "" {
		r.AllowedUserType = "any"
	}
}

// ValidateTimes checks both wall times parse and start < end.
func (r *CreateSlotRequest) ValidateTimes() error {
	start, err := time.Parse("15:04", r.StartTime)
	if err != nil {
		return fmt.Errorf("start_time must be HH:MM")
	}
	end, err := time.Parse("15:04", r.EndTime)
	if err != nil {
		return fmt.Errorf("end_time must be HH:MM")
	}
	if !start.Before(end) {
		return fmt.Errorf("start_time must be before end_time")
	}
	return nil
}

func (r *CreateSlotRequest) ToModel() *slModel.SlotModel {
	m := &slModel.SlotModel{
		SportID:           r.SportID,
		StartTime:         r.StartTime,
		EndTime:           r.EndTime,
		GenderRestriction: r.GenderRestriction,
		AllowedUserType:   r.AllowedUserType,
		IsActive:          true,
	}
	if r.IsActive != nil {
		m.IsActive = *r.IsActive
	}
	return m
}

type UpdateSlotRequest struct {
	StartTime         *string `json:"start_time,omitempty"`
	EndTime           *string `json:"end_time,omitempty"`
	GenderRestriction *string `json:"gender_restriction,omitempty" validate:"omitempty,oneof=male female any"`
	AllowedUserType   *string `json:"allowed_user_type,omitempty" validate:"omitempty,oneof=any student faculty"`
	IsActive          *bool   `json:"is_active,omitempty"`
}

func (r *UpdateSlotRequest) Updates() (map[string]any, error) {
	out := map[string]any{}
	if r.StartTime != nil {
		if _, err := time.Parse("15:04", *r.StartTime); err != nil {
			return nil, fmt.Errorf("start_time must be HH:MM")
		}
		out["start_time"] = *r.StartTime
	}
	if r.EndTime != nil {
		if _, err := time.Parse("15:04", *r.EndTime); err != nil {
			return nil, fmt.Errorf("end_time must be HH:MM")
		}
		out["end_time"] = *r.EndTime
	}
	if r.StartTime != nil && r.EndTime != nil {
		start, _ := time.Parse("15:04", *r.StartTime)
		end, _ := time.Parse("15:04", *r.EndTime)
		if !start.Before(end) {
			return nil, fmt.Errorf("start_time must be before end_time")
		}
	}
	if r.GenderRestriction != nil {
		out["gender_restriction"] = strings.ToLower(*r.GenderRestriction)
	}
	if r.AllowedUserType != nil {
		out["allowed_user_type"] = strings.ToLower(*r.AllowedUserType)
	}
	if r.IsActive != nil {
		out["is_active"] = *r.IsActive
	}
	return out, nil
}

/* =======================================================
   RESPONSE DTOs
   ======================================================= */

type SlotResponse struct {
	ID                uuid.UUID `json:"id"`
	SportID           uuid.UUID `json:"sport_id"`
	StartTime         string    `json:"start_time"`
	EndTime           string    `json:"end_time"`
	GenderRestriction string    `json:"gender_restriction"`
	AllowedUserType   string    `json:"allowed_user_type"`
	IsActive          bool      `json:"is_active"`
}

func FromModel(m *slModel.SlotModel) SlotResponse {
	return SlotResponse{
		ID:                m.ID,
		SportID:           m.SportID,
		StartTime:         m.StartTime,
		EndTime:           m.EndTime,
		GenderRestriction: m.GenderRestriction,
		AllowedUserType:   m.AllowedUserType,
		IsActive:          m.IsActive,
	}
}
