package auth

import (
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/constants"
	authModel "sportku_backend/internals/features/users/auth/model"
	profileModel "sportku_backend/internals/features/users/profile/model"
)

func middlewareDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auth.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&authModel.TokenBlacklist{}))
	// the model's uuid server default is postgres-only; plain DDL here
	require.NoError(t, db.Exec(`CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'normal',
		user_type TEXT NOT NULL,
		course TEXT,
		phone TEXT,
		gender TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`).Error)
	return db
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	if _, ok := claims["exp"]; !ok {
		claims["exp"] = time.Now().Add(time.Hour).Unix()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)
	return tok
}

func authApp(db *gorm.DB) *fiber.App {
	app := fiber.New()
	app.Get("/whoami", AuthMiddleware(db), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"role":   c.Locals("userRole"),
			"type":   c.Locals("userType"),
			"gender": c.Locals("userGender"),
		})
	})
	app.Get("/admin-only",
		AuthMiddleware(db),
		OnlyRoles(constants.RoleErrorAdmin("test"), constants.RoleAdmin),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func doGet(t *testing.T, app *fiber.App, path, token string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

// The profile row, not the token, decides role/type/gender: a demoted
// admin must lose access the moment the row changes, no matter what the
// still-valid token claims.
func TestAuthMiddlewareProfileOverridesTokenClaims(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := middlewareDB(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&profileModel.ProfileModel{
		ID:       uuid.New(),
		UserID:   userID,
		FullName: "Demoted Admin",
		Role:     constants.RoleNormal,
		UserType: constants.UserTypeStudent,
		Gender:   constants.GenderMale,
	}).Error)

	token := signToken(t, jwt.MapClaims{
		"user_id":   userID.String(),
		"role":      constants.RoleAdmin,
		"user_type": constants.UserTypeFaculty,
		"gender":    constants.GenderFemale,
	})

	app := authApp(db)

	code, _ := doGet(t, app, "/admin-only", token)
	assert.Equal(t, fiber.StatusForbidden, code, "stale admin claim must not grant access")

	code, body := doGet(t, app, "/whoami", token)
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, body, constants.RoleNormal)
	assert.Contains(t, body, constants.UserTypeStudent)
	assert.Contains(t, body, constants.GenderMale)
	assert.NotContains(t, body, constants.GenderFemale)
}

// A banned profile gets 403 and the presented token lands on the
// blacklist, so even a replay of the same still-valid token dies.
func TestAuthMiddlewareBanKillsSession(t *testing.T) {
	configs.JWTSecret = "test-secret"
	db := middlewareDB(t)
	userID := uuid.New()

	require.NoError(t, db.Create(&profileModel.ProfileModel{
		ID:       uuid.New(),
		UserID:   userID,
		FullName: "Banned User",
		Role:     constants.RoleBan,
		UserType: constants.UserTypeStudent,
		Gender:   constants.GenderFemale,
	}).Error)

	token := signToken(t, jwt.MapClaims{
		"user_id":   userID.String(),
		"role":      constants.RoleNormal,
		"user_type": constants.UserTypeStudent,
		"gender":    constants.GenderFemale,
	})

	app := authApp(db)

	code, body := doGet(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusForbidden, code)
	assert.True(t, strings.Contains(body, constants.ErrBannedAccount))

	var blacklisted int64
	require.NoError(t, db.Model(&authModel.TokenBlacklist{}).
		Where("token = ?", token).Count(&blacklisted).Error)
	assert.EqualValues(t, 1, blacklisted, "presented token must be blacklisted")

	code, _ = doGet(t, app, "/whoami", token)
	assert.Equal(t, fiber.StatusUnauthorized, code, "replayed token must be rejected as blacklisted")
}
