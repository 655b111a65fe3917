package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportku_backend/internals/constants"
	slotModel "sportku_backend/internals/features/sports/slot/model"
)

func TestSlotStartOn(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	start, err := SlotStartOn("2026-03-14", "18:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 18, 30, 0, 0, loc), start)

	// TIME columns come back with seconds attached
	start, err = SlotStartOn("2026-03-14", "18:30:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 18, 30, 0, 0, loc), start)

	_, err = SlotStartOn("14-03-2026", "18:30", loc)
	assert.Error(t, err)

	_, err = SlotStartOn("2026-03-14", "6pm", loc)
	assert.Error(t, err)
}

func TestCanCancelWindow(t *testing.T) {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"31 minutes before", start.Add(-31 * time.Minute), true},
		{"30 minutes and 1 second before", start.Add(-30*time.Minute - time.Second), true},
		{"exactly 30 minutes before", start.Add(-30 * time.Minute), false},
		{"29 minutes before", start.Add(-29 * time.Minute), false},
		{"after start", start.Add(time.Minute), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanCancel(tc.now, start))
		})
	}
}

func TestCheckEligibility(t *testing.T) {
	openSlot := &slotModel.SlotModel{
		GenderRestriction: constants.RestrictionAny,
		AllowedUserType:   constants.RestrictionAny,
	}
	assert.NoError(t, CheckEligibility(openSlot, constants.GenderMale, constants.UserTypeStudent))
	assert.NoError(t, CheckEligibility(openSlot, constants.GenderFemale, constants.UserTypeFaculty))

	womenOnly := &slotModel.SlotModel{
		GenderRestriction: constants.GenderFemale,
		AllowedUserType:   constants.RestrictionAny,
	}
	assert.NoError(t, CheckEligibility(womenOnly, constants.GenderFemale, constants.UserTypeStudent))
	assert.ErrorIs(t, CheckEligibility(womenOnly, constants.GenderMale, constants.UserTypeStudent), ErrGenderNotAllowed)

	facultyOnly := &slotModel.SlotModel{
		GenderRestriction: constants.RestrictionAny,
		AllowedUserType:   constants.UserTypeFaculty,
	}
	assert.NoError(t, CheckEligibility(facultyOnly, constants.GenderMale, constants.UserTypeFaculty))
	assert.ErrorIs(t, CheckEligibility(facultyOnly, constants.GenderMale, constants.UserTypeStudent), ErrUserTypeNotAllowed)

	// gender is checked before user type when both mismatch
	womenFaculty := &slotModel.SlotModel{
		GenderRestriction: constants.GenderFemale,
		AllowedUserType:   constants.UserTypeFaculty,
	}
	assert.ErrorIs(t, CheckEligibility(womenFaculty, constants.GenderMale, constants.UserTypeStudent), ErrGenderNotAllowed)
}
