// file: internals/features/sports/slot/route/slot_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sportku_backend/internals/constants"
	controller "sportku_backend/internals/features/sports/slot/controller"
	authMW "sportku_backend/internals/middlewares/auth"
	"sportku_backend/internals/realtime"
)

func SlotRoutes(app *fiber.App, db *gorm.DB, feed *realtime.Feed) {
	slotController := controller.NewSlotController(db, feed)

	// ===== PUBLIC =====
	app.Get("/api/public/sports/:id/slots", slotController.ListForSport)

	// ===== ADMIN =====
	admin := app.Group("/api/a/slots",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles(constants.RoleErrorAdmin("slots"), constants.RoleAdmin),
	)
	admin.Get("/", slotController.List)
	admin.Post("/", slotController.Create)
	admin.Put("/:id", slotController.Update)
	admin.Delete("/:id", slotController.Deactivate)
}
