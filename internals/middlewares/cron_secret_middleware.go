package middlewares

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CronSecretGuard protects endpoints meant for external schedulers.
// The caller must send ?secret=<shared secret>; anything else is 401.
func CronSecretGuard(secret func() string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		want := strings.TrimSpace(secret())
		got := strings.TrimSpace(c.Query("secret"))
		if want == "" || subtle.ConstantTimeCompare([]byte(want), []byte(got)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized: invalid secret",
			})
		}
		return c.Next()
	}
}
