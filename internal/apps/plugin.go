package apps

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every resource module must implement.
type Plugin interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts module routes on the /api group. gate is the
	// session middleware for routes that need an authenticated caller.
	RegisterRoutes(router fiber.Router, db *gorm.DB, gate fiber.Handler)
}
