package handlers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService *services.AuthService
	issuer      *session.Issuer
}

func NewAuthHandler(authService *services.AuthService, issuer *session.Issuer) *AuthHandler {
	return &AuthHandler{authService: authService, issuer: issuer}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	if _, err := h.authService.Register(appID, &req); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Email already registered.",
			})
		}
		if errors.Is(err, services.ErrPhoneTaken) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Phone number already registered.",
			})
		}
		slog.Error("registration failed", "app_id", appID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "User created successfully."})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if err := validation.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	token, err := h.authService.Login(appID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid email or password.",
			})
		}
		slog.Error("login failed", "app_id", appID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(h.issuer.Cookie(token))
	return c.JSON(dto.MessageResponse{Message: "Login successful."})
}

// Logout clears the session cookie without looking at it.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.issuer.ClearCookie())
	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}

func (h *AuthHandler) DeleteAccount(c *fiber.Ctx) error {
	appID := tenant.GetAppID(c)
	userID, err := tenant.GetUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.DeleteAccountRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Invalid request body",
			})
		}
	}

	if err := h.authService.DeleteAccount(appID, userID, req.ConfirmationText); err != nil {
		if errors.Is(err, services.ErrConfirmationMismatch) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Please type 'delete my account' to confirm deletion.",
			})
		}
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "User not found.",
			})
		}
		slog.Error("account deletion failed", "app_id", appID, "user_id", userID.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Internal server error",
		})
	}

	c.Cookie(h.issuer.ClearCookie())
	return c.JSON(dto.MessageResponse{Message: "User deleted successfully."})
}
