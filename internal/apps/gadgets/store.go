package gadgets

import (
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Filter narrows Find. Status selects one exact status; otherwise
// ExcludeStatus, when set, drops one.
type Filter struct {
	Status        Status
	ExcludeStatus Status
	UserID        *uuid.UUID
}

// Store persists gadgets for a tenant.
type Store interface {
	FindByID(appID string, id uuid.UUID) (*Gadget, error)
	Find(appID string, f Filter) ([]Gadget, error)
	Create(g *Gadget) error
	// Update writes patch and reports whether the row existed.
	Update(appID string, id uuid.UUID, patch Patch) (bool, error)
	Delete(appID string, id uuid.UUID) (bool, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindByID(appID string, id uuid.UUID) (*Gadget, error) {
	var g Gadget
	err := s.db.Scopes(tenant.ForTenant(appID)).First(&g, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGadgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find gadget: %w", err)
	}
	return &g, nil
}

func (s *GormStore) Find(appID string, f Filter) ([]Gadget, error) {
	q := s.db.Scopes(tenant.ForTenant(appID))
	switch {
	case f.Status != "":
		q = q.Where("status = ?", f.Status)
	case f.ExcludeStatus != "":
		q = q.Where("status <> ?", f.ExcludeStatus)
	}
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}

	var list []Gadget
	if err := q.Order("created_at ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list gadgets: %w", err)
	}
	return list, nil
}

func (s *GormStore) Create(g *Gadget) error {
	if err := s.db.Create(g).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrIdentityTaken
		}
		return fmt.Errorf("failed to create gadget: %w", err)
	}
	return nil
}

func (s *GormStore) Update(appID string, id uuid.UUID, patch Patch) (bool, error) {
	result := s.db.Model(&Gadget{}).Scopes(tenant.ForTenant(appID)).
		Where("id = ?", id).
		Updates(map[string]interface{}(patch))
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return false, ErrIdentityTaken
		}
		return false, fmt.Errorf("failed to update gadget: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (s *GormStore) Delete(appID string, id uuid.UUID) (bool, error) {
	result := s.db.Scopes(tenant.ForTenant(appID)).Where("id = ?", id).Delete(&Gadget{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete gadget: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
