package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/features/sports/slot/dto"
	"sportku_backend/internals/features/sports/slot/model"
	sportModel "sportku_backend/internals/features/sports/sport/model"
	helper "sportku_backend/internals/helpers"
	"sportku_backend/internals/realtime"
)

type SlotController struct {
	DB   *gorm.DB
	Feed *realtime.Feed
}

func NewSlotController(db *gorm.DB, feed *realtime.Feed) *SlotController {
	return &SlotController{DB: db, Feed: feed}
}

var validate = validator.New()

func (ctl *SlotController) publish(c *fiber.Ctx, action string, id uuid.UUID) {
	ctl.Feed.Publish(c.UserContext(), realtime.Event{
		Table:  "slots",
		Action: action,
		RowID:  id.String(),
	})
}

/* =========================
   Public
   ========================= */

// GET /api/public/sports/:id/slots — active slots of an active sport
func (ctl *SlotController) ListForSport(c *fiber.Ctx) error {
	sportID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sport id")
	}

	var sport sportModel.SportModel
	if err := ctl.DB.First(&sport, "id = ? AND is_active = true", sportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sport not found or inactive")
		}
		return helper.WritePGError(c, err)
	}

	var slots []model.SlotModel
	if err := ctl.DB.
		Where("sport_id = ? AND is_active = true", sportID).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	out := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, dto.FromModel(&slots[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

/* =========================
   Admin CRUD
   ========================= */

// GET /api/a/slots?sport_id=
func (ctl *SlotController) List(c *fiber.Ctx) error {
	q := ctl.DB.Model(&model.SlotModel{})
	if sportID := c.Query("sport_id"); sportID != "" {
		id, err := uuid.Parse(sportID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sport_id")
		}
		q = q.Where("sport_id = ?", id)
	}

	var slots []model.SlotModel
	if err := q.Order("start_time ASC").Find(&slots).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	out := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, dto.FromModel(&slots[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// POST /api/a/slots
func (ctl *SlotController) Create(c *fiber.Ctx) error {
	var req dto.CreateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if err := req.ValidateTimes(); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	// slot needs an existing sport
	var count int64
	if err := ctl.DB.Model(&sportModel.SportModel{}).Where("id = ?", req.SportID).Count(&count).Error; err != nil {
		return helper.WritePGError(c, err)
	}
	if count == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Sport not found")
	}

	m := req.ToModel()
	if err := ctl.DB.Create(m).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	ctl.publish(c, realtime.ActionInsert, m.ID)
	return helper.JsonCreated(c, "Slot created", dto.FromModel(m))
}

// PUT /api/a/slots/:id
func (ctl *SlotController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slot id")
	}

	var req dto.UpdateSlotRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	updates, err := req.Updates()
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.Model(&model.SlotModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Slot not found")
	}

	ctl.publish(c, realtime.ActionUpdate, id)
	return helper.JsonUpdated(c, "Slot updated", nil)
}

// DELETE /api/a/slots/:id — deactivate only
func (ctl *SlotController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid slot id")
	}

	res := ctl.DB.Model(&model.SlotModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Slot not found")
	}

	ctl.publish(c, realtime.ActionUpdate, id)
	return helper.JsonDeleted(c, "Slot deactivated", fiber.Map{"id": id})
}
