// file: internals/route/index.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	bookingRoute "sportku_backend/internals/features/bookings/booking/route"
	chatRoute "sportku_backend/internals/features/chat/route"
	feedbackRoute "sportku_backend/internals/features/feedback/route"
	notificationRoute "sportku_backend/internals/features/notifications/route"
	slotRoute "sportku_backend/internals/features/sports/slot/route"
	sportRoute "sportku_backend/internals/features/sports/sport/route"
	authRoute "sportku_backend/internals/features/users/auth/route"
	profileRoute "sportku_backend/internals/features/users/profile/route"
	"sportku_backend/internals/realtime"
)

// SetupRoutes mounts every feature's routes. The returned stop func
// tears down background work the routes started (chat prompt cache).
func SetupRoutes(app *fiber.App, db *gorm.DB, feed *realtime.Feed) func() {
	BaseRoutes(app, db)

	authRoute.AuthRoutes(app, db)
	profileRoute.ProfileRoutes(app, db)

	sportRoute.SportRoutes(app, db, feed)
	slotRoute.SlotRoutes(app, db, feed)
	bookingRoute.BookingRoutes(app, db, feed)

	notificationRoute.NotificationRoutes(app, db, feed)
	feedbackRoute.FeedbackRoutes(app, db)
	return chatRoute.ChatRoutes(app, db, feed)
}
