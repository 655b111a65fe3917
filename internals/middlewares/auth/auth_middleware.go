// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/constants"
	authModel "sportku_backend/internals/features/users/auth/model"
	profileModel "sportku_backend/internals/features/users/profile/model"
)

// Public paths skipped by auth (webhooks etc.)
var skipPaths = map[string]struct{}{
	"/api/chat/health": {},
}

func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1) Skip selected paths
		if _, ok := skipPaths[c.Path()]; ok {
			return c.Next()
		}

		// 2) Authorization header (or cookie)
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		// 3) Blacklist check (once per request)
		if c.Locals("token_checked") == nil {
			var existing authModel.TokenBlacklist
			if err := db.Where("token = ? AND deleted_at IS NULL", tokenString).First(&existing).Error; err == nil {
				return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token is blacklisted")
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				log.Println("[ERROR] DB error on blacklist check:", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
			}
			c.Locals("token_checked", true)
		}

		// 4) Parse & verify JWT
		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		// 5) Expiry (30s clock skew)
		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		// 6) user_id + fresh profile state
		userID, err := extractUserID(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Invalid or missing user ID")
		}
		c.Locals("user_id", userID.String())

		// claims first, profile second: the DB row overwrites whatever
		// the (possibly stale) token says about role / type / gender
		storeBasicClaimsToLocals(c, claims)
		if err := enforceProfileState(c, db, userID, tokenString, claims); err != nil {
			return err
		}
		return c.Next()
	}
}

// enforceProfileState re-reads the profile so a ban applied after login
// takes effect on the very next request. A banned profile gets 403 and
// the presented token is blacklisted, killing the session server-side.
func enforceProfileState(c *fiber.Ctx, db *gorm.DB, userID uuid.UUID, tokenString string, claims jwt.MapClaims) error {
	var profile profileModel.ProfileModel
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// signed up, not onboarded yet; /api/check-profile redirects these
		c.Locals("profile_missing", true)
		return nil
	}
	if err != nil {
		log.Println("[ERROR] profile lookup:", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}

	if profile.Role == constants.RoleBan {
		expiredAt := time.Now().Add(24 * time.Hour)
		if expUnix, ok := claims["exp"].(float64); ok {
			expiredAt = time.Unix(int64(expUnix), 0)
		}
		_ = db.Create(&authModel.TokenBlacklist{
			Token:     tokenString,
			ExpiredAt: expiredAt,
		}).Error
		return fiber.NewError(fiber.StatusForbidden, constants.ErrBannedAccount)
	}

	// authoritative values come from the DB, not the (possibly stale) claims
	c.Locals("userRole", profile.Role)
	c.Locals("userType", profile.UserType)
	c.Locals("userGender", profile.Gender)
	return nil
}
