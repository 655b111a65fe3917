package auth

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sportku_backend/internals/constants"
)

func roleApp(role string, allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/admin",
		func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals("userRole", role)
			}
			return c.Next()
		},
		OnlyRoles(constants.RoleErrorAdmin("test"), allowed...),
		func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) },
	)
	return app
}

func TestOnlyRoles(t *testing.T) {
	resp, err := roleApp(constants.RoleAdmin, constants.RoleAdmin).
		Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = roleApp(constants.RoleNormal, constants.RoleAdmin).
		Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// no role in locals at all
	resp, err = roleApp("", constants.RoleAdmin).
		Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
