package middleware

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/session"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// SessionRequired verifies the session cookie and stores the parsed token
// under the "user" local.
func SessionRequired(issuer *session.Issuer) fiber.Handler {
	return jwtware.New(jwtware.Config{
		TokenLookup: "cookie:" + issuer.CookieName(),
		KeyFunc:     issuer.KeyFunc,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, _ := c.Locals("user").(*jwt.Token)
			mc, _ := token.Claims.(jwt.MapClaims)
			id, err := session.IdentityFromClaims(mc)
			if err != nil || id.AppID != tenant.GetAppID(c) {
				return unauthorized(c, "Unauthorised: Invalid token")
			}
			return c.Next()
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if c.Cookies(issuer.CookieName()) == "" {
				return unauthorized(c, "Unauthorised: No token provided")
			}
			if errors.Is(session.Classify(err), session.ErrTokenExpired) {
				return unauthorized(c, "Unauthorized: Token expired.")
			}
			slog.Warn("session token rejected", "path", c.Path(), "error", err.Error())
			return unauthorized(c, "Unauthorised: Invalid token")
		},
	})
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
