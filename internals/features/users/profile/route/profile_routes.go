// file: internals/features/users/profile/route/profile_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sportku_backend/internals/constants"
	controller "sportku_backend/internals/features/users/profile/controller"
	authMW "sportku_backend/internals/middlewares/auth"
)

func ProfileRoutes(app *fiber.App, db *gorm.DB) {
	profileController := controller.NewProfileController(db)

	// routing hint for the client shell
	app.Get("/api/check-profile", authMW.AuthMiddleware(db), profileController.CheckProfile)

	// ===== USER =====
	user := app.Group("/api/u", authMW.AuthMiddleware(db))
	user.Post("/profile", profileController.Create)
	user.Get("/profile", profileController.GetMe)
	user.Put("/profile", profileController.UpdateMe)

	// ===== ADMIN =====
	admin := app.Group("/api/a",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.RoleAdmin),
	)
	admin.Get("/profiles", profileController.List)
	admin.Post("/profiles/:id/ban", profileController.Ban)
	admin.Post("/profiles/:id/unban", profileController.Unban)
}
