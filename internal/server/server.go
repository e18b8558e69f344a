// Package server assembles the Fiber application: global middleware, the
// error handler, shared routes and resource plugins.
package server

import (
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/apps"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/apps/gadgets"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Plugins lists every resource module served by the API.
func Plugins() []apps.Plugin {
	return []apps.Plugin{
		gadgets.New(),
	}
}

// Migrate creates shared and plugin tables.
func Migrate(db *gorm.DB, plugins []apps.Plugin) error {
	if err := database.MigrateShared(db); err != nil {
		return err
	}
	for _, p := range plugins {
		if models := p.Models(); len(models) > 0 {
			if err := database.MigrateModels(db, models); err != nil {
				return err
			}
			slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
		}
	}
	return nil
}

// New builds the application. Sentry middleware is installed only when a
// DSN is configured.
func New(cfg *config.Config, db *gorm.DB, registry *tenant.Registry, plugins []apps.Plugin) *fiber.App {
	issuer := session.NewIssuer(cfg)
	authService := services.NewAuthService(services.NewGormUserStore(db), issuer)

	authHandler := handlers.NewAuthHandler(authService, issuer)
	healthHandler := handlers.NewHealthHandler(registry, func() error { return database.Ping(db) })

	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		Immutable:    true,
		ErrorHandler: ErrorHandler,
	})

	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.TenantMiddleware(registry))

	routes.Setup(app, db, issuer, authHandler, healthHandler, plugins)
	return app
}

// ErrorHandler renders framework errors. Details of 5xx errors stay in the log.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
