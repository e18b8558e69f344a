package gadgets

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type GadgetHandler struct {
	gadgetService *GadgetService
}

func NewGadgetHandler(gadgetService *GadgetService) *GadgetHandler {
	return &GadgetHandler{gadgetService: gadgetService}
}

// Mount registers the gadget routes; gate guards every mutating route.
func (h *GadgetHandler) Mount(router fiber.Router, gate fiber.Handler) {
	router.Post("/gadgets", gate, h.CreateGadget)
	router.Get("/gadgets", h.ListGadgets)
	router.Patch("/gadgets/:id", gate, h.UpdateGadget)
	router.Patch("/gadgets/:id/decommission", gate, h.DecommissionGadget)

	router.Patch("/deployment/:id/deployed", gate, h.DeployGadget)
	router.Patch("/destruction/:id/self-destruct", gate, h.SelfDestructGadget)
}

// CreateGadget handles POST /gadgets - generates a gadget for the caller.
func (h *GadgetHandler) CreateGadget(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorised access",
		})
	}

	g, err := h.gadgetService.Create(appID, userID)
	if err != nil {
		return h.fail(c, err, "create")
	}

	return c.Status(fiber.StatusCreated).JSON(GadgetResponse{
		Message: "Gadget generated successfully.",
		Gadget:  Present(g),
	})
}

// ListGadgets handles GET /gadgets?status=.
func (h *GadgetHandler) ListGadgets(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)

	var status Status
	if raw := c.Query("status"); raw != "" {
		st, err := ParseStatus(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid status filter",
			})
		}
		status = st
	}

	list, err := h.gadgetService.List(appID, status)
	if err != nil {
		return h.fail(c, err, "list")
	}

	if len(list) == 0 {
		msg := "No gadgets found."
		if status != "" {
			msg = fmt.Sprintf("No gadgets found with status '%s'.", status)
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: msg,
		})
	}

	return c.JSON(PresentAll(list))
}

// UpdateGadget handles PATCH /gadgets/:id - overwrites name and/or skin.
func (h *GadgetHandler) UpdateGadget(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidGadgetID(c)
	}

	var req UpdateGadgetRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}
	}
	if field := nullField(c.Body()); field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: field + " cannot be empty",
		})
	}
	if req.Name == nil && req.Skin == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	g, err := h.gadgetService.Rename(appID, id, req.Name, req.Skin)
	if err != nil {
		return h.fail(c, err, "rename")
	}

	var message string
	switch {
	case req.Name != nil && req.Skin != nil:
		message = "Name and skin updated successfully."
	case req.Name != nil:
		message = "Name updated successfully."
	default:
		message = "Skin updated successfully."
	}

	return c.JSON(GadgetResponse{Message: message, Gadget: Present(g)})
}

// DecommissionGadget handles PATCH /gadgets/:id/decommission.
func (h *GadgetHandler) DecommissionGadget(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidGadgetID(c)
	}

	g, err := h.gadgetService.Decommission(appID, id)
	if err != nil {
		return h.fail(c, err, "decommission")
	}

	return c.JSON(DecommissionResponse{
		Message:          "Gadget decommissioned successfully.",
		Status:           g.Status,
		DecommissionedAt: g.DecommissionedAt,
	})
}

// DeployGadget handles PATCH /deployment/:id/deployed.
func (h *GadgetHandler) DeployGadget(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorised access",
		})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidGadgetID(c)
	}

	g, err := h.gadgetService.Deploy(appID, id, userID)
	if err != nil {
		return h.fail(c, err, "deploy")
	}

	return c.JSON(GadgetResponse{
		Message: "Gadget deployed successfully.",
		Gadget:  Present(g),
	})
}

// SelfDestructGadget handles PATCH /destruction/:id/self-destruct and reveals
// the self-destruct sequence.
func (h *GadgetHandler) SelfDestructGadget(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorised access",
		})
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return invalidGadgetID(c)
	}

	g, err := h.gadgetService.SelfDestruct(appID, id, userID)
	if err != nil {
		return h.fail(c, err, "self_destruct")
	}

	return c.JSON(SelfDestructResponse{
		Message:              "Gadget self-destructed successfully.",
		SelfDestructSequence: g.SelfDestructSequence,
		Status:               g.Status,
		DestroyedAt:          g.DestroyedAt,
	})
}

// nullField names the first rename field sent as an explicit null. Decoding
// into a pointer cannot tell null from absent.
func nullField(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return ""
	}
	for _, field := range []string{"name", "skin"} {
		if v, ok := raw[field]; ok && string(v) == "null" {
			return field
		}
	}
	return ""
}

func invalidGadgetID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Gadget ID must be a valid UUID",
	})
}

func (h *GadgetHandler) fail(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, ErrGadgetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Gadget not found.",
		})
	case errors.Is(err, ErrCannotSelfDestruct):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Gadget cannot be self destructed.",
		})
	case errors.Is(err, ErrNotAvailable):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Gadget not available for deployment.",
		})
	case errors.Is(err, ErrIdentityTaken):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Gadget name or skin already in use.",
		})
	case errors.Is(err, ErrNothingToUpdate):
		return c.SendStatus(fiber.StatusNoContent)
	}

	slog.Error("gadget operation failed", "action", action, "app_id", tenant.GetAppID(c), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}
