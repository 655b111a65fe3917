package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/features/bookings/booking/dto"
	"sportku_backend/internals/features/bookings/booking/model"
	"sportku_backend/internals/features/bookings/booking/service"
	sportModel "sportku_backend/internals/features/sports/sport/model"
	helper "sportku_backend/internals/helpers"
	"sportku_backend/internals/realtime"
)

type BookingController struct {
	DB   *gorm.DB
	Feed *realtime.Feed
	loc  *time.Location
}

func NewBookingController(db *gorm.DB, feed *realtime.Feed) *BookingController {
	loc, err := time.LoadLocation(configs.GetEnv("APP_TIMEZONE", "Asia/Kolkata"))
	if err != nil {
		log.Printf("❌ invalid APP_TIMEZONE, falling back to UTC: %v", err)
		loc = time.UTC
	}
	return &BookingController{DB: db, Feed: feed, loc: loc}
}

func (bc *BookingController) publish(c *fiber.Ctx, action string, id uuid.UUID) {
	bc.Feed.Publish(c.UserContext(), realtime.Event{Table: "bookings", Action: action, RowID: id.String()})
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	return uuid.Parse(raw)
}

// Create books one seat. Conflicts surface as 409 whether caught by the
// advisory checks or by the unique index itself.
func (bc *BookingController) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.ValidateDate(); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "booking_date must be YYYY-MM-DD")
	}

	gender, _ := c.Locals("userGender").(string)
	userType, _ := c.Locals("userType").(string)

	row, err := service.CreateBooking(bc.DB, service.CreateParams{
		UserID:      userID,
		SportID:     req.SportID,
		SlotID:      req.SlotID,
		BookingDate: req.BookingDate,
		SeatNumber:  req.SeatNumber,
		Gender:      gender,
		UserType:    userType,
		Now:         time.Now().In(bc.loc),
		Loc:         bc.loc,
	})
	if err != nil {
		return bc.writeServiceError(c, err)
	}

	bc.publish(c, realtime.ActionInsert, row.ID)
	return helper.JsonCreated(c, "Seat booked", dto.FromModel(row))
}

// Occupancy returns the full seat grid for one sport/slot/date.
func (bc *BookingController) Occupancy(c *fiber.Ctx) error {
	userID, _ := currentUserID(c)

	sportID, err := uuid.Parse(c.Query("sport_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "sport_id is required")
	}
	slotID, err := uuid.Parse(c.Query("slot_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "slot_id is required")
	}
	date := c.Query("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "date must be YYYY-MM-DD")
	}

	var sport sportModel.SportModel
	if err := bc.DB.First(&sport, "id = ?", sportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sport not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load sport")
	}

	var rows []model.BookingModel
	if err := bc.DB.
		Where("sport_id = ? AND slot_id = ? AND booking_date = ?", sportID, slotID, date).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load bookings")
	}

	taken := make(map[int]model.BookingModel, len(rows))
	for _, r := range rows {
		taken[r.SeatNumber] = r
	}

	grid := make([]dto.SeatStatus, 0, sport.Capacity)
	for seat := 1; seat <= sport.Capacity; seat++ {
		cell := dto.SeatStatus{SeatNumber: seat, Status: "free"}
		if r, ok := taken[seat]; ok {
			cell.Status = r.Status
			cell.Mine = r.UserID == userID
		}
		grid = append(grid, cell)
	}

	return helper.JsonOK(c, "Occupancy", fiber.Map{
		"sport_id": sportID,
		"slot_id":  slotID,
		"date":     date,
		"capacity": sport.Capacity,
		"seats":    grid,
	})
}

// MyBookings lists the caller's bookings, newest first.
func (bc *BookingController) MyBookings(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var rows []model.BookingModel
	if err := bc.DB.
		Where("user_id = ?", userID).
		Order("booking_date DESC, created_at DESC").
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load bookings")
	}

	out := make([]dto.BookingResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonOK(c, "My bookings", out)
}

// Cancel deletes the caller's booking while the cutoff window is open.
func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid booking id")
	}

	row, err := service.CancelBooking(bc.DB, bookingID, userID, time.Now().In(bc.loc), bc.loc)
	if err != nil {
		return bc.writeServiceError(c, err)
	}

	bc.publish(c, realtime.ActionDelete, row.ID)
	return helper.JsonDeleted(c, "Booking cancelled", dto.FromModel(row))
}

// CheckIn marks the caller as arrived.
func (bc *BookingController) CheckIn(c *fiber.Ctx) error {
	return bc.doTransition(c, service.CheckIn, "Checked in")
}

// CheckOut marks the caller as done with the seat.
func (bc *BookingController) CheckOut(c *fiber.Ctx) error {
	return bc.doTransition(c, service.CheckOut, "Checked out")
}

// AdminCheckIn advances any booking from a scanned QR; the route's role
// gate replaces the owner check.
func (bc *BookingController) AdminCheckIn(c *fiber.Ctx) error {
	return bc.doAdminTransition(c, service.AdminCheckIn, "Checked in")
}

// AdminCheckOut advances any booking to checked_out.
func (bc *BookingController) AdminCheckOut(c *fiber.Ctx) error {
	return bc.doAdminTransition(c, service.AdminCheckOut, "Checked out")
}

func (bc *BookingController) doAdminTransition(
	c *fiber.Ctx,
	fn func(*gorm.DB, uuid.UUID, time.Time) (*model.BookingModel, error),
	okMsg string,
) error {
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid booking id")
	}

	row, err := fn(bc.DB, bookingID, time.Now().In(bc.loc))
	if err != nil {
		return bc.writeServiceError(c, err)
	}

	bc.publish(c, realtime.ActionUpdate, row.ID)
	return helper.JsonUpdated(c, okMsg, dto.FromModel(row))
}

func (bc *BookingController) doTransition(
	c *fiber.Ctx,
	fn func(*gorm.DB, uuid.UUID, uuid.UUID, time.Time) (*model.BookingModel, error),
	okMsg string,
) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid booking id")
	}

	row, err := fn(bc.DB, bookingID, userID, time.Now().In(bc.loc))
	if err != nil {
		return bc.writeServiceError(c, err)
	}

	bc.publish(c, realtime.ActionUpdate, row.ID)
	return helper.JsonUpdated(c, okMsg, dto.FromModel(row))
}

// Reset archives every booking. Guarded by the cron secret on its route.
func (bc *BookingController) Reset(c *fiber.Ctx) error {
	moved, err := service.ArchiveAll(bc.DB)
	if err != nil {
		log.Printf("❌ booking reset failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to archive bookings",
		})
	}

	bc.publish(c, realtime.ActionDelete, uuid.Nil)
	log.Printf("✅ booking reset: archived %d rows", moved)
	return c.JSON(fiber.Map{
		"success":  true,
		"archived": moved,
		"message":  "All bookings archived",
	})
}

func (bc *BookingController) writeServiceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSportInactive),
		errors.Is(err, service.ErrSlotInactive):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotMismatch),
		errors.Is(err, service.ErrSeatOutOfRange),
		errors.Is(err, service.ErrSlotStarted),
		errors.Is(err, service.ErrCancelWindowClosed):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrGenderNotAllowed),
		errors.Is(err, service.ErrUserTypeNotAllowed),
		errors.Is(err, service.ErrNotOwner):
		return helper.JsonError(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrSeatTaken),
		errors.Is(err, service.ErrAlreadyBooked),
		errors.Is(err, service.ErrBadTransition):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	default:
		log.Printf("❌ booking operation failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Something went wrong")
	}
}
