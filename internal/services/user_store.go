package services

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateUser is returned by Create when email or phone already exist.
var ErrDuplicateUser = errors.New("user already exists")

// UserStore persists user records for a tenant. Lookups return
// gorm.ErrRecordNotFound when nothing matches.
type UserStore interface {
	FindByEmail(appID, email string) (*models.User, error)
	FindByPhone(appID, phone string) (*models.User, error)
	Create(user *models.User) error
	// Delete removes the user and reports whether a row existed.
	Delete(appID string, id uuid.UUID) (bool, error)
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByEmail(appID, email string) (*models.User, error) {
	var user models.User
	if err := s.db.Scopes(tenant.ForTenant(appID)).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) FindByPhone(appID, phone string) (*models.User, error) {
	var user models.User
	if err := s.db.Scopes(tenant.ForTenant(appID)).Where("phone_number = ?", phone).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *GormUserStore) Create(user *models.User) error {
	if err := s.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUser
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Delete hard-deletes the row; the gadgets.user_id foreign key cascades.
func (s *GormUserStore) Delete(appID string, id uuid.UUID) (bool, error) {
	result := s.db.Scopes(tenant.ForTenant(appID)).Where("id = ?", id).Delete(&models.User{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete user: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
