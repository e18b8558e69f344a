package routes

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/session"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	db *gorm.DB,
	issuer *session.Issuer,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	plugins []apps.Plugin,
) {
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (no tenant required)
	api.Get("/health", healthHandler.Check)

	gate := middleware.SessionRequired(issuer)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/deleteUser", gate, authHandler.DeleteAccount)

	for _, p := range plugins {
		p.RegisterRoutes(api, db, gate)
	}
}
