package middlewares

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cronApp(secret string) *fiber.App {
	app := fiber.New()
	app.Post("/reset", CronSecretGuard(func() string { return secret }), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})
	return app
}

func TestCronSecretGuard(t *testing.T) {
	app := cronApp("s3cret")

	resp, err := app.Test(httptest.NewRequest("POST", "/reset?secret=s3cret", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/reset?secret=wrong", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("POST", "/reset", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCronSecretGuardRejectsWhenUnconfigured(t *testing.T) {
	// empty server-side secret must never open the endpoint
	app := cronApp("")

	resp, err := app.Test(httptest.NewRequest("POST", "/reset?secret=", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
