package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/features/notifications/dto"
	"sportku_backend/internals/features/notifications/model"
	helper "sportku_backend/internals/helpers"
	"sportku_backend/internals/realtime"
)

var validate = validator.New()

type NotificationController struct {
	DB   *gorm.DB
	Feed *realtime.Feed
}

func NewNotificationController(db *gorm.DB, feed *realtime.Feed) *NotificationController {
	return &NotificationController{DB: db, Feed: feed}
}

func (nc *NotificationController) publish(c *fiber.Ctx, action string, id uuid.UUID) {
	nc.Feed.Publish(c.UserContext(), realtime.Event{Table: "notifications", Action: action, RowID: id.String()})
}

// ListActive is the feed users see: active announcements, newest first.
func (nc *NotificationController) ListActive(c *fiber.Ctx) error {
	var rows []model.NotificationModel
	if err := nc.DB.
		Where("is_active = ?", true).
		Order("created_at DESC").
		Limit(50).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load notifications")
	}

	out := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonOK(c, "Notifications", out)
}

// List is the admin view, paged, including inactive rows.
func (nc *NotificationController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := nc.DB.Model(&model.NotificationModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}

	var rows []model.NotificationModel
	if err := nc.DB.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.PerPage).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load notifications")
	}

	out := make([]dto.NotificationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonList(c, "Notifications", out, helper.BuildPagination(paging.Page, paging.PerPage, total, len(out)))
}

func (nc *NotificationController) Create(c *fiber.Ctx) error {
	var req dto.CreateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	row := req.ToModel()
	if err := nc.DB.Create(row).Error; err != nil {
		log.Printf("❌ create notification failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create notification")
	}

	nc.publish(c, realtime.ActionInsert, row.ID)
	return helper.JsonCreated(c, "Notification created", dto.FromModel(row))
}

func (nc *NotificationController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	var req dto.UpdateNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}
	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	var row model.NotificationModel
	if err := nc.DB.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load notification")
	}

	if err := nc.DB.Model(&row).Updates(updates).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update notification")
	}

	nc.publish(c, realtime.ActionUpdate, row.ID)
	return helper.JsonUpdated(c, "Notification updated", dto.FromModel(&row))
}

func (nc *NotificationController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid notification id")
	}

	res := nc.DB.Delete(&model.NotificationModel{}, "id = ?", id)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete notification")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Notification not found")
	}

	nc.publish(c, realtime.ActionDelete, id)
	return helper.JsonDeleted(c, "Notification deleted", fiber.Map{"id": id})
}
