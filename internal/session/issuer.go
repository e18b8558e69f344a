// Package session issues and verifies the signed cookie token that identifies
// an authenticated user.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/config"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("invalid token")
)

// Identity is the subject carried by a session token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	AppID  string
}

type Issuer struct {
	secret       []byte
	ttl          time.Duration
	cookieName   string
	cookieMaxAge time.Duration
	secure       bool
	now          func() time.Time
}

func NewIssuer(cfg *config.Config) *Issuer {
	return &Issuer{
		secret:       []byte(cfg.JWTSecret),
		ttl:          cfg.JWTExpiry,
		cookieName:   cfg.SessionCookie,
		cookieMaxAge: cfg.CookieMaxAge,
		secure:       cfg.CookieSecure,
		now:          time.Now,
	}
}

func (i *Issuer) CookieName() string { return i.cookieName }

// Issue signs an HS256 token for id, valid for the configured TTL.
func (i *Issuer) Issue(id Identity) (string, error) {
	now := i.now()
	claims := jwt.MapClaims{
		"sub":    id.UserID.String(),
		"email":  id.Email,
		"app_id": id.AppID,
		"iat":    now.Unix(),
		"exp":    now.Add(i.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// KeyFunc rejects anything not signed with HMAC.
func (i *Issuer) KeyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
	return i.secret, nil
}

// Classify maps a jwt parse error onto ErrTokenExpired or ErrTokenInvalid.
func Classify(err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return ErrTokenExpired
	}
	return ErrTokenInvalid
}

func IdentityFromClaims(mc jwt.MapClaims) (Identity, error) {
	sub, _ := mc["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, ErrTokenInvalid
	}
	email, _ := mc["email"].(string)
	appID, _ := mc["app_id"].(string)
	return Identity{UserID: userID, Email: email, AppID: appID}, nil
}

// Cookie wraps token in the session cookie.
func (i *Issuer) Cookie(token string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     i.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(i.cookieMaxAge.Seconds()),
		HTTPOnly: true,
		Secure:   i.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}

// ClearCookie returns an already-expired session cookie.
func (i *Issuer) ClearCookie() *fiber.Cookie {
	return &fiber.Cookie{
		Name:     i.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   i.secure,
		SameSite: fiber.CookieSameSiteStrictMode,
	}
}
