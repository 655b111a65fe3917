// file: internals/features/users/auth/route/auth_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "sportku_backend/internals/features/users/auth/controller"
	rateLimiter "sportku_backend/internals/middlewares"
	authMW "sportku_backend/internals/middlewares/auth"
)

func AuthRoutes(app *fiber.App, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	// global rate limiter
	app.Use(rateLimiter.GlobalRateLimiter())

	// ==========================
	// PUBLIC — Base: /api/auth
	// ==========================
	baseAuth := app.Group("/api/auth")

	baseAuth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	baseAuth.Post("/login-google", rateLimiter.LoginRateLimiter(), authController.LoginGoogle)
	baseAuth.Post("/register", rateLimiter.RegisterRateLimiter(), authController.Register)
	baseAuth.Post("/refresh-token", authController.RefreshToken)
	baseAuth.Post("/forgot-password/reset", rateLimiter.ForgotPasswordRateLimiter(), authController.ResetPassword)
	baseAuth.Post("/check-user-exists", rateLimiter.ForgotPasswordRateLimiter(), authController.CheckUserExists)

	// ==========================
	// PROTECTED — Base: /api/auth
	// ==========================
	protectedAuth := app.Group("/api/auth", authMW.AuthMiddleware(db))

	protectedAuth.Post("/logout", authController.Logout)
	protectedAuth.Post("/change-password", authController.ChangePassword)
	protectedAuth.Get("/me", authController.Me)
}
