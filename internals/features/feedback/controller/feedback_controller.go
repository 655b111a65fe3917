package controller

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/features/feedback/dto"
	"sportku_backend/internals/features/feedback/model"
	helper "sportku_backend/internals/helpers"
)

var validate = validator.New()

type FeedbackController struct {
	DB *gorm.DB
}

func NewFeedbackController(db *gorm.DB) *FeedbackController {
	return &FeedbackController{DB: db}
}

// Create stores one piece of user feedback.
func (fc *FeedbackController) Create(c *fiber.Ctx) error {
	raw, _ := c.Locals("user_id").(string)
	userID, err := uuid.Parse(raw)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req dto.CreateFeedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Validation failed: "+err.Error())
	}

	row := req.ToModel(userID)
	if err := fc.DB.Create(row).Error; err != nil {
		log.Printf("❌ create feedback failed: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to save feedback")
	}

	return helper.JsonCreated(c, "Thanks for the feedback", dto.FromModel(row))
}

// List is the admin view, newest first, paged.
func (fc *FeedbackController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := fc.DB.Model(&model.FeedbackModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count feedback")
	}

	var rows []model.FeedbackModel
	if err := fc.DB.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.PerPage).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load feedback")
	}

	out := make([]dto.FeedbackResponse, 0, len(rows))
	for i := range rows {
		out = append(out, dto.FromModel(&rows[i]))
	}
	return helper.JsonList(c, "Feedback", out, helper.BuildPagination(paging.Page, paging.PerPage, total, len(out)))
}
