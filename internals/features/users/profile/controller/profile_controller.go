package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/constants"
	authService "sportku_backend/internals/features/users/auth/service"
	"sportku_backend/internals/features/users/profile/dto"
	"sportku_backend/internals/features/users/profile/model"
	helper "sportku_backend/internals/helpers"
)

type ProfileController struct {
	DB *gorm.DB
}

func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

var validate = validator.New()

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Unauthorized")
	}
	id, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user id")
	}
	return id, nil
}

/* =========================
   Onboarding create
   ========================= */

// POST /api/u/profile — first submission after signup
func (ctl *ProfileController) Create(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	m := req.ToModel(userID)
	m.Role = constants.RoleNormal
	if err := ctl.DB.Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Profile already exists")
		}
		return helper.WritePGError(c, err)
	}

	return helper.JsonCreated(c, "Profile created", dto.FromModel(m))
}

/* =========================
   Me
   ========================= */

// GET /api/u/profile
func (ctl *ProfileController) GetMe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var profile model.ProfileModel
	if err := ctl.DB.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
		}
		return helper.WritePGError(c, err)
	}

	return helper.JsonOK(c, "OK", dto.FromModel(&profile))
}

// PUT /api/u/profile
func (ctl *ProfileController) UpdateMe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Nothing to update")
	}

	res := ctl.DB.Model(&model.ProfileModel{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if res.Error != nil {
		return helper.WritePGError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
	}

	return helper.JsonUpdated(c, "Profile updated", nil)
}

/* =========================
   Check profile (routing hint for the client)
   ========================= */

// GET /api/check-profile — answers where the client should navigate.
func (ctl *ProfileController) CheckProfile(c *fiber.Ctx) error {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"redirect": "/login"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"redirect": "/login"})
	}

	var profile model.ProfileModel
	err = ctl.DB.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"redirect": "/onboarding"})
	}
	if err != nil {
		return helper.WritePGError(c, err)
	}
	if profile.Role == constants.RoleBan {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"redirect": "/banned"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

/* =========================
   Admin
   ========================= */

// GET /api/a/profiles
func (ctl *ProfileController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 20, 100)

	q := ctl.DB.Model(&model.ProfileModel{})
	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if userType := c.Query("user_type"); userType != "" {
		q = q.Where("user_type = ?", userType)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	var profiles []model.ProfileModel
	if err := q.Order("created_at DESC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&profiles).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	out := make([]dto.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		out = append(out, dto.FromModel(&profiles[i]))
	}

	return helper.JsonList(c, "OK", out,
		helper.BuildPagination(paging.Page, paging.PerPage, total, len(out)))
}

// POST /api/a/profiles/:id/ban — bans the account and revokes sessions.
func (ctl *ProfileController) Ban(c *fiber.Ctx) error {
	return ctl.setRole(c, constants.RoleBan)
}

// POST /api/a/profiles/:id/unban
func (ctl *ProfileController) Unban(c *fiber.Ctx) error {
	return ctl.setRole(c, constants.RoleNormal)
}

func (ctl *ProfileController) setRole(c *fiber.Ctx, role string) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid profile id")
	}

	var profile model.ProfileModel
	if err := ctl.DB.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Profile not found")
		}
		return helper.WritePGError(c, err)
	}

	if err := ctl.DB.Model(&profile).Update("role", role).Error; err != nil {
		return helper.WritePGError(c, err)
	}

	if role == constants.RoleBan {
		// a banned user must not keep a live session
		if err := authService.RevokeAllSessions(ctl.DB, profile.UserID); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke sessions")
		}
	}

	return helper.JsonUpdated(c, "Role updated", fiber.Map{"id": profile.ID, "role": role})
}
