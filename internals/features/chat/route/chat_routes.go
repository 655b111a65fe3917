// file: internals/features/chat/route/chat_routes.go
package route

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sportku_backend/internals/features/chat/controller"
	"sportku_backend/internals/features/chat/service"
	authMW "sportku_backend/internals/middlewares/auth"
	"sportku_backend/internals/realtime"
)

// ChatRoutes mounts the chat endpoints and returns a stop func that
// shuts the prompt cache's feed subscribers down.
func ChatRoutes(app *fiber.App, db *gorm.DB, feed *realtime.Feed) func() {
	cache := service.NewPromptCache(db)
	cache.Start(context.Background(), feed)

	chatController := controller.NewChatController(db, cache)

	// Health stays public; the stream needs a signed-in user.
	app.Get("/api/chat/health", chatController.Health)
	app.Post("/api/chat", authMW.AuthMiddleware(db), chatController.Stream)

	return cache.Stop
}
