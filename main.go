package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"

	"sportku_backend/internals/configs"
	database "sportku_backend/internals/databases"
	bookingScheduler "sportku_backend/internals/features/bookings/booking/scheduler"
	sportScheduler "sportku_backend/internals/features/sports/sport/scheduler"
	authScheduler "sportku_backend/internals/features/users/auth/scheduler"
	middlewares "sportku_backend/internals/middlewares"
	"sportku_backend/internals/realtime"
	routes "sportku_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing, with an HTTP timeout matching the DB
	// statement_timeout so a stuck query cannot hold a connection.
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()

	// Realtime feed is optional: without REDIS_ADDR the app still runs,
	// clients just fall back to polling.
	var feed *realtime.Feed
	if addr := configs.GetEnv("REDIS_ADDR", ""); addr != "" {
		var err error
		feed, err = realtime.NewFeed(addr, configs.GetEnv("REDIS_PASSWORD", ""), 0)
		if err != nil {
			log.Printf("❌ realtime feed disabled: %v", err)
			feed = nil
		}
	}

	// Schedulers start after the DB is ready.
	authScheduler.StartBlacklistCleanupScheduler(database.DB)
	sportScheduler.StartSportToggleScheduler(database.DB)
	bookingScheduler.StartBookingArchiveScheduler(database.DB)

	stopRoutes := routes.SetupRoutes(app, database.DB, feed)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	stopRoutes()
	if feed != nil {
		_ = feed.Close()
	}
	if sqlDB, err := database.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
