package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// Pinger reports database reachability.
type Pinger func() error

type HealthHandler struct {
	registry *tenant.Registry
	ping     Pinger
}

func NewHealthHandler(registry *tenant.Registry, ping Pinger) *HealthHandler {
	return &HealthHandler{registry: registry, ping: ping}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "ok"
	dbStatus := "ok"
	if err := h.ping(); err != nil {
		status = "degraded"
		dbStatus = "unhealthy"
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		AppCount:  len(h.registry.All()),
	})
}
