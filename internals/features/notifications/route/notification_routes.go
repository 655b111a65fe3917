// file: internals/features/notifications/route/notification_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sportku_backend/internals/constants"
	controller "sportku_backend/internals/features/notifications/controller"
	authMW "sportku_backend/internals/middlewares/auth"
	"sportku_backend/internals/realtime"
)

func NotificationRoutes(app *fiber.App, db *gorm.DB, feed *realtime.Feed) {
	notificationController := controller.NewNotificationController(db, feed)

	// ===== USER =====
	user := app.Group("/api/notifications", authMW.AuthMiddleware(db))
	user.Get("/", notificationController.ListActive)

	// ===== ADMIN =====
	admin := app.Group("/api/a/notifications",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles(constants.RoleErrorAdmin("notifications"), constants.RoleAdmin),
	)
	admin.Get("/", notificationController.List)
	admin.Post("/", notificationController.Create)
	admin.Put("/:id", notificationController.Update)
	admin.Delete("/:id", notificationController.Delete)
}
