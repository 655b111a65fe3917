package service

import (
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sportku_backend/internals/constants"
	bookingModel "sportku_backend/internals/features/bookings/booking/model"
	slotModel "sportku_backend/internals/features/sports/slot/model"
	sportModel "sportku_backend/internals/features/sports/sport/model"
)

// integrationDB opens the database named by TEST_DATABASE_DSN, or skips.
func integrationDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set; skipping integration test")
	}
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&sportModel.SportModel{},
		&slotModel.SlotModel{},
		&bookingModel.BookingModel{},
		&bookingModel.BookingHistoryModel{},
	))
	return db
}

func seedSportAndSlot(t *testing.T, db *gorm.DB, capacity int) (*sportModel.SportModel, *slotModel.SlotModel) {
	t.Helper()
	sport := sportModel.SportModel{
		Name:     fmt.Sprintf("it-badminton-%s", uuid.NewString()[:8]),
		Capacity: capacity,
		IsActive: true,
	}
	require.NoError(t, db.Create(&sport).Error)
	slot := slotModel.SlotModel{
		SportID:           sport.ID,
		StartTime:         "18:00",
		EndTime:           "19:00",
		GenderRestriction: constants.RestrictionAny,
		AllowedUserType:   constants.RestrictionAny,
		IsActive:          true,
	}
	require.NoError(t, db.Create(&slot).Error)

	t.Cleanup(func() {
		db.Where("sport_id = ?", sport.ID).Delete(&bookingModel.BookingModel{})
		db.Delete(&slot)
		db.Delete(&sport)
	})
	return &sport, &slot
}

// Exactly one of N concurrent claims on the same seat may win; every
// loser must see the conflict error, never a silent failure.
func TestConcurrentSeatClaims(t *testing.T) {
	db := integrationDB(t)
	sport, slot := seedSportAndSlot(t, db, 10)
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	const contenders = 8
	var wg sync.WaitGroup
	errs := make([]error, contenders)

	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = CreateBooking(db, CreateParams{
				UserID:      uuid.New(),
				SportID:     sport.ID,
				SlotID:      slot.ID,
				BookingDate: date,
				SeatNumber:  3,
				Gender:      constants.GenderMale,
				UserType:    constants.UserTypeStudent,
				Now:         time.Now(),
				Loc:         time.UTC,
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, ErrSeatTaken)
		}
	}
	assert.Equal(t, 1, winners, "the unique index must admit exactly one claim")
}

func TestDoubleBookingSameUserRejected(t *testing.T) {
	db := integrationDB(t)
	sport, slot := seedSportAndSlot(t, db, 10)
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	userID := uuid.New()

	params := CreateParams{
		UserID:      userID,
		SportID:     sport.ID,
		SlotID:      slot.ID,
		BookingDate: date,
		SeatNumber:  1,
		Gender:      constants.GenderFemale,
		UserType:    constants.UserTypeStudent,
		Now:         time.Now(),
		Loc:         time.UTC,
	}
	_, err := CreateBooking(db, params)
	require.NoError(t, err)

	params.SeatNumber = 2 // different seat, same slot and day
	_, err = CreateBooking(db, params)
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

// The desk advances other people's bookings; the self-service path may
// not.
func TestAdminTransitionSkipsOwnerCheck(t *testing.T) {
	db := integrationDB(t)
	sport, slot := seedSportAndSlot(t, db, 10)
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")
	owner := uuid.New()

	row, err := CreateBooking(db, CreateParams{
		UserID:      owner,
		SportID:     sport.ID,
		SlotID:      slot.ID,
		BookingDate: date,
		SeatNumber:  4,
		Gender:      constants.GenderMale,
		UserType:    constants.UserTypeStudent,
		Now:         time.Now(),
		Loc:         time.UTC,
	})
	require.NoError(t, err)

	// a stranger cannot self-check-in someone else's booking
	_, err = CheckIn(db, row.ID, uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrNotOwner)

	got, err := AdminCheckIn(db, row.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCheckedIn, got.Status)
	require.NotNil(t, got.CheckedInAt)

	// status order still holds on the admin path
	_, err = AdminCheckIn(db, row.ID, time.Now())
	assert.ErrorIs(t, err, ErrBadTransition)

	got, err = AdminCheckOut(db, row.ID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, constants.BookingStatusCheckedOut, got.Status)
}

func TestArchiveAllMovesEverything(t *testing.T) {
	db := integrationDB(t)
	sport, slot := seedSportAndSlot(t, db, 10)
	date := time.Now().AddDate(0, 0, 1).Format("2006-01-02")

	for seat := 1; seat <= 3; seat++ {
		_, err := CreateBooking(db, CreateParams{
			UserID:      uuid.New(),
			SportID:     sport.ID,
			SlotID:      slot.ID,
			BookingDate: date,
			SeatNumber:  seat,
			Gender:      constants.GenderMale,
			UserType:    constants.UserTypeFaculty,
			Now:         time.Now(),
			Loc:         time.UTC,
		})
		require.NoError(t, err)
	}

	moved, err := ArchiveAll(db)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, moved, int64(3))

	var left int64
	require.NoError(t, db.Model(&bookingModel.BookingModel{}).Count(&left).Error)
	assert.Zero(t, left)

	t.Cleanup(func() {
		db.Where("sport_id = ?", sport.ID).Delete(&bookingModel.BookingHistoryModel{})
	})
}
