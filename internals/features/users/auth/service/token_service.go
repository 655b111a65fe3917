// internals/features/users/auth/service/token_service.go
package service

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/constants"
	authModel "sportku_backend/internals/features/users/auth/model"
	authRepo "sportku_backend/internals/features/users/auth/repository"
	helper "sportku_backend/internals/helpers"
)

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	refreshCookie := strings.TrimSpace(c.Cookies("refresh_token"))
	if refreshCookie == "" {
		return helper.JsonError(c, fiber.StatusUnauthorized, "No refresh token")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	// Parse & validate refresh JWT
	tok, err := jwt.Parse(refreshCookie, func(t *jwt.Token) (any, error) {
		return []byte(refreshSecret), nil
	})
	if err != nil || !tok.Valid {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// Hash must exist and be active in the DB
	hash := computeRefreshHash(refreshCookie, refreshSecret)
	exists, err := authRepo.RefreshTokenHashExists(db, hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if !exists {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unknown refresh token")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "User not found")
	}
	if !user.IsActive {
		return helper.JsonError(c, fiber.StatusForbidden, "Your account has been deactivated")
	}

	profile, err := loadProfile(db, user.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load profile")
	}
	if profile != nil && profile.Role == constants.RoleBan {
		return helper.JsonError(c, fiber.StatusForbidden, constants.ErrBannedAccount)
	}

	// ROTATE: remove the old hash before issuing a new pair
	if err := authRepo.DeleteRefreshTokenByHash(db, hash); err != nil {
		log.Printf("[refresh] delete old hash failed: %v", err)
	}

	access, err := issueSession(db, c, user, profile)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	return helper.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token": access,
	})
}

// RevokeAllSessions removes every refresh token a user holds. Used when
// an admin bans an account.
func RevokeAllSessions(db *gorm.DB, userID uuid.UUID) error {
	return db.Where("user_id = ?", userID).Delete(&authModel.RefreshToken{}).Error
}
