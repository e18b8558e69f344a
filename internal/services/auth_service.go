package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/session"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DeleteConfirmation must be typed (any case) to delete an account.
const DeleteConfirmation = "delete my account"

// BcryptCost is the salted hash work factor for stored passwords.
const BcryptCost = 10

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrPhoneTaken           = errors.New("phone number already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrUserNotFound         = errors.New("user not found")
	ErrConfirmationMismatch = errors.New("confirmation text does not match")
)

type AuthService struct {
	users  UserStore
	issuer *session.Issuer
}

func NewAuthService(users UserStore, issuer *session.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer}
}

func (s *AuthService) Register(appID string, req *dto.RegisterRequest) (*models.User, error) {
	if _, err := s.users.FindByEmail(appID, req.Email); err == nil {
		metrics.AuthEvents.WithLabelValues("register", "email_taken").Inc()
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	if _, err := s.users.FindByPhone(appID, req.PhoneNumber); err == nil {
		metrics.AuthEvents.WithLabelValues("register", "phone_taken").Inc()
		return nil, ErrPhoneTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up phone number: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:          uuid.New(),
		AppID:       appID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    string(hash),
	}

	if err := s.users.Create(&user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, ErrDuplicateUser) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	metrics.AuthEvents.WithLabelValues("register", "ok").Inc()
	slog.Info("user registered", "app_id", appID, "user_id", user.ID.String())
	return &user, nil
}

// Login returns a signed session token. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(appID string, req *dto.LoginRequest) (string, error) {
	user, err := s.users.FindByEmail(appID, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.AuthEvents.WithLabelValues("login", "rejected").Inc()
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.AuthEvents.WithLabelValues("login", "rejected").Inc()
		return "", ErrInvalidCredentials
	}

	token, err := s.issuer.Issue(session.Identity{UserID: user.ID, Email: user.Email, AppID: appID})
	if err != nil {
		return "", err
	}

	metrics.AuthEvents.WithLabelValues("login", "ok").Inc()
	return token, nil
}

// DeleteAccount removes the caller's account once the confirmation phrase matches.
func (s *AuthService) DeleteAccount(appID string, userID uuid.UUID, confirmation string) error {
	if !strings.EqualFold(confirmation, DeleteConfirmation) {
		return ErrConfirmationMismatch
	}

	deleted, err := s.users.Delete(appID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUserNotFound
	}

	metrics.AuthEvents.WithLabelValues("delete", "ok").Inc()
	slog.Info("user deleted", "app_id", appID, "user_id", userID.String())
	return nil
}
