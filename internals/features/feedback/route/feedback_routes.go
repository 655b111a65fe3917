// file: internals/features/feedback/route/feedback_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sportku_backend/internals/constants"
	controller "sportku_backend/internals/features/feedback/controller"
	authMW "sportku_backend/internals/middlewares/auth"
)

func FeedbackRoutes(app *fiber.App, db *gorm.DB) {
	feedbackController := controller.NewFeedbackController(db)

	user := app.Group("/api/feedback", authMW.AuthMiddleware(db))
	user.Post("/", feedbackController.Create)

	admin := app.Group("/api/a/feedback",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles(constants.RoleErrorAdmin("feedback"), constants.RoleAdmin),
	)
	admin.Get("/", feedbackController.List)
}
