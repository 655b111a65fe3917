// file: internals/features/sports/sport/route/sport_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/constants"
	controller "sportku_backend/internals/features/sports/sport/controller"
	"sportku_backend/internals/middlewares"
	authMW "sportku_backend/internals/middlewares/auth"
	"sportku_backend/internals/realtime"
)

func SportRoutes(app *fiber.App, db *gorm.DB, feed *realtime.Feed) {
	sportController := controller.NewSportController(db, feed)

	// ===== PUBLIC =====
	public := app.Group("/api/public/sports")
	public.Get("/", sportController.ListActive)
	public.Get("/:id", sportController.GetByID)

	// ===== CRON (shared secret, for external schedulers) =====
	cron := app.Group("/api/sports",
		middlewares.CronSecretGuard(func() string { return configs.CronSecret }),
	)
	cron.Post("/activate", sportController.ActivateAll)
	cron.Post("/deactivate", sportController.DeactivateAll)

	// ===== ADMIN =====
	admin := app.Group("/api/a/sports",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles(constants.RoleErrorAdmin("sports"), constants.RoleAdmin),
	)
	admin.Get("/", sportController.List)
	admin.Post("/", sportController.Create)
	admin.Put("/:id", sportController.Update)
	admin.Delete("/:id", sportController.Deactivate)
	admin.Post("/activate-all", sportController.ActivateAll)
	admin.Post("/deactivate-all", sportController.DeactivateAll)
}
