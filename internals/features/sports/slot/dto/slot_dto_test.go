package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSlotRequestNormalize(t *testing.T) {
	r := CreateSlotRequest{
		StartTime:         " 06:00 ",
		EndTime:           "07:30",
		GenderRestriction: " Female ",
	}
	r.Normalize()

	assert.Equal(t, "06:00", r.StartTime)
	assert.Equal(t, "female", r.GenderRestriction)
	assert.Equal(t, "any", r.AllowedUserType, "empty restriction defaults to any")
}

func TestCreateSlotRequestValidateTimes(t *testing.T) {
	ok := CreateSlotRequest{StartTime: "06:00", EndTime: "07:30"}
	assert.NoError(t, ok.ValidateTimes())

	backwards := CreateSlotRequest{StartTime: "08:00", EndTime: "07:00"}
	assert.Error(t, backwards.ValidateTimes())

	equal := CreateSlotRequest{StartTime: "07:00", EndTime: "07:00"}
	assert.Error(t, equal.ValidateTimes())

	garbage := CreateSlotRequest{StartTime: "6am", EndTime: "07:00"}
	assert.Error(t, garbage.ValidateTimes())
}

func TestUpdateSlotRequestUpdates(t *testing.T) {
	start, end := "09:00", "10:00"
	active := false
	r := UpdateSlotRequest{StartTime: &start, EndTime: &end, IsActive: &active}

	updates, err := r.Updates()
	require.NoError(t, err)
	assert.Equal(t, "09:00", updates["start_time"])
	assert.Equal(t, false, updates["is_active"])

	bad := "10:00"
	worse := "09:00"
	r = UpdateSlotRequest{StartTime: &bad, EndTime: &worse}
	_, err = r.Updates()
	assert.Error(t, err)
}
