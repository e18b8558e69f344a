package middleware

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// Paths that don't require tenant identification.
var tenantSkipPaths = []string{
	"/api/health",
	"/metrics",
}

// TenantMiddleware extracts app_id from the X-App-ID header or query param.
func TenantMiddleware(registry *tenant.Registry) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		for _, skip := range tenantSkipPaths {
			if strings.HasPrefix(path, skip) {
				return c.Next()
			}
		}

		appID := c.Get("X-App-ID")
		if appID == "" {
			appID = c.Query("app_id")
		}

		if appID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "X-App-ID header is required",
			})
		}
		if !registry.Exists(appID) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Invalid X-App-ID: " + appID,
			})
		}

		// Get and Query alias the request buffer; the id outlives the request.
		c.Locals("app_id", utils.CopyString(appID))
		return c.Next()
	}
}
