package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/features/sports/sport/dto"
	"sportku_backend/internals/features/sports/sport/model"
	"sportku_backend/internals/features/sports/sport/service"
	helper "sportku_backend/internals/helpers"
	"sportku_backend/internals/helpers/storage"
	"sportku_backend/internals/realtime"
)

type SportController struct {
	DB   *gorm.DB
	Feed *realtime.Feed
}

func NewSportController(db *gorm.DB, feed *realtime.Feed) *SportController {
	return &SportController{DB: db, Feed: feed}
}

var validate = validator.New()

func (ctl *SportController) publish(c *fiber.Ctx, action string, id uuid.UUID) {
	ctl.Feed.Publish(c.UserContext(), realtime.Event{
		Table:  "sports",
		Action: action,
		RowID:  id.String(),
	})
}

/* =========================
   Public
   ========================= */

// GET /api/public/sports — active only, for the booking screen
func (ctl *SportController) ListActive(c *fiber.Ctx) error {
	var sports []model.SportModel
	if err := ctl.DB.Where("is_active = true").Order("name ASC").Find(&sports).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	out := make([]dto.SportResponse, 0, len(sports))
	for i := range sports {
		out = append(out, dto.FromModel(&sports[i]))
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /api/public/sports/:id
func (ctl *SportController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sport id")
	}

	var sport model.SportModel
	if err := ctl.DB.First(&sport, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sport not found")
		}
		return helper.WritePGError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModel(&sport))
}

/* =========================
   Admin CRUD
   ========================= */

// GET /api/a/sports — includes inactive
func (ctl *SportController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctl.DB.Model(&model.SportModel{}).Count(&total).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	var sports []model.SportModel
	if err := ctl.DB.Order("name ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&sports).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	out := make([]dto.SportResponse, 0, len(sports))
	for i := range sports {
		out = append(out, dto.FromModel(&sports[i]))
	}
	return helper.JsonList(c, "OK", out,
		helper.BuildPagination(paging.Page, paging.PerPage, total, len(out)))
}

// POST /api/a/sports — multipart: fields + optional image file
func (ctl *SportController) Create(c *fiber.Ctx) error {
	var req dto.CreateSportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := req.ToModel()

	if fileHeader, err := c.FormFile("image"); err == nil && fileHeader != nil {
		url, uerr := storage.UploadSportImage("sports", fileHeader)
		if uerr != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, uerr.Error())
		}
		m.ImageURL = url
	}

	if err := ctl.DB.Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A sport with this name already exists")
		}
		return helper.WritePGError(c, err)
	}

	ctl.publish(c, realtime.ActionInsert, m.ID)
	return helper.JsonCreated(c, "Sport created", dto.FromModel(m))
}

// PUT /api/a/sports/:id
func (ctl *SportController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sport id")
	}

	var req dto.UpdateSportRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	var sport model.SportModel
	if err := ctl.DB.First(&sport, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Sport not found")
		}
		return helper.WritePGError(c, err)
	}

	updates := req.Updates()

	if fileHeader, ferr := c.FormFile("image"); ferr == nil && fileHeader != nil {
		url, uerr := storage.UploadSportImage("sports", fileHeader)
		if uerr != nil {
			return helper.JsonError(c, fiber.StatusUnprocessableEntity, uerr.Error())
		}
		// drop the replaced object, best effort
		if sport.ImageURL != "" {
			if bucket, path, perr := storage.ExtractSupabasePath(sport.ImageURL); perr == nil {
				_ = storage.DeleteFromSupabase(bucket, path)
			}
		}
		updates["image_url"] = url
	}

	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	if err := ctl.DB.Model(&sport).Updates(updates).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "A sport with this name already exists")
		}
		return helper.WritePGError(c, err)
	}

	ctl.publish(c, realtime.ActionUpdate, sport.ID)
	return helper.JsonUpdated(c, "Sport updated", dto.FromModel(&sport))
}

// DELETE /api/a/sports/:id — deactivate, never hard-delete history
func (ctl *SportController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid sport id")
	}

	res := ctl.DB.Model(&model.SportModel{}).
		Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Sport not found")
	}

	ctl.publish(c, realtime.ActionUpdate, id)
	return helper.JsonDeleted(c, "Sport deactivated", fiber.Map{"id": id})
}

/* =========================
   Bulk toggles (admin + cron)
   ========================= */

// POST /api/a/sports/activate-all  |  POST /api/sports/activate?secret=
func (ctl *SportController) ActivateAll(c *fiber.Ctx) error {
	count, err := service.SetAllActive(ctl.DB, true)
	if err != nil {
		return serviceResult(c, false, count, err.Error())
	}
	ctl.Feed.Publish(c.UserContext(), realtime.Event{Table: "sports", Action: realtime.ActionUpdate})
	return serviceResult(c, true, count, "All sports activated")
}

// POST /api/a/sports/deactivate-all  |  POST /api/sports/deactivate?secret=
func (ctl *SportController) DeactivateAll(c *fiber.Ctx) error {
	count, err := service.SetAllActive(ctl.DB, false)
	if err != nil {
		return serviceResult(c, false, count, err.Error())
	}
	ctl.Feed.Publish(c.UserContext(), realtime.Event{Table: "sports", Action: realtime.ActionUpdate})
	return serviceResult(c, true, count, "All sports deactivated")
}

// serviceResult is the structured shape external schedulers log.
func serviceResult(c *fiber.Ctx, ok bool, count int64, msg string) error {
	status := fiber.StatusOK
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(fiber.Map{
		"success": ok,
		"count":   count,
		"message": msg,
	})
}
