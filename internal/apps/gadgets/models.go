package gadgets

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/gadget-backend/internal/models"
	"github.com/google/uuid"
)

type Status string

const (
	StatusAvailable      Status = "Available"
	StatusDeployed       Status = "Deployed"
	StatusDestroyed      Status = "Destroyed"
	StatusDecommissioned Status = "Decommissioned"
)

// Statuses lists every lifecycle state in graph order.
var Statuses = []Status{StatusAvailable, StatusDeployed, StatusDestroyed, StatusDecommissioned}

// Gadget is the persisted record. It is never serialized directly; handlers
// render it through Present.
type Gadget struct {
	ID                        uuid.UUID    `gorm:"type:uuid;primaryKey"`
	AppID                     string       `gorm:"size:50;not null;index;uniqueIndex:idx_gadgets_app_name;uniqueIndex:idx_gadgets_app_skin"`
	OwnerID                   uuid.UUID    `gorm:"type:uuid;not null;index"`
	UserID                    *uuid.UUID   `gorm:"type:uuid;index"`
	User                      *models.User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Name                      string       `gorm:"size:255;not null;uniqueIndex:idx_gadgets_app_name"`
	Skin                      string       `gorm:"size:100;not null;uniqueIndex:idx_gadgets_app_skin"`
	MissionSuccessProbability int          `gorm:"not null"`
	Status                    Status       `gorm:"type:varchar(20);not null;default:'Available';index"`
	SelfDestructSequence      int          `gorm:"not null"`
	DeployedAt                *time.Time
	DestroyedAt               *time.Time
	DecommissionedAt          *time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

func (Gadget) TableName() string { return "gadgets" }

// --- DTOs ---

type UpdateGadgetRequest struct {
	Name *string `json:"name" validate:"omitnil,min=1,max=255"`
	Skin *string `json:"skin" validate:"omitnil,min=1,max=100"`
}

type GadgetResponse struct {
	Message string `json:"message"`
	Gadget  View   `json:"gadget"`
}

type DecommissionResponse struct {
	Message          string     `json:"message"`
	Status           Status     `json:"status"`
	DecommissionedAt *time.Time `json:"decommissioned_at"`
}

type SelfDestructResponse struct {
	Message              string     `json:"message"`
	SelfDestructSequence int        `json:"self_destruct_sequence"`
	Status               Status     `json:"status"`
	DestroyedAt          *time.Time `json:"destroyed_at"`
}
