// file: internals/features/bookings/booking/route/booking_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sportku_backend/internals/configs"
	"sportku_backend/internals/constants"
	controller "sportku_backend/internals/features/bookings/booking/controller"
	"sportku_backend/internals/middlewares"
	authMW "sportku_backend/internals/middlewares/auth"
	"sportku_backend/internals/realtime"
)

func BookingRoutes(app *fiber.App, db *gorm.DB, feed *realtime.Feed) {
	bookingController := controller.NewBookingController(db, feed)

	// ===== CRON (shared secret, for external schedulers) =====
	cronGuard := middlewares.CronSecretGuard(func() string { return configs.CronSecret })
	app.Post("/api/bookings/reset", cronGuard, bookingController.Reset)
	// legacy path some schedulers still call
	app.Post("/api/reset-bookings", cronGuard, bookingController.Reset)

	// ===== USER =====
	user := app.Group("/api/bookings", authMW.AuthMiddleware(db))
	user.Get("/occupancy", bookingController.Occupancy)
	user.Get("/me", bookingController.MyBookings)
	user.Post("/", bookingController.Create)
	user.Delete("/:id", bookingController.Cancel)
	user.Post("/:id/check-in", bookingController.CheckIn)
	user.Post("/:id/check-out", bookingController.CheckOut)

	// ===== ADMIN (QR scan at the desk) =====
	admin := app.Group("/api/a/bookings",
		authMW.AuthMiddleware(db),
		authMW.OnlyRoles(constants.RoleErrorAdmin("bookings"), constants.RoleAdmin),
	)
	admin.Post("/:id/check-in", bookingController.AdminCheckIn)
	admin.Post("/:id/check-out", bookingController.AdminCheckOut)
}
