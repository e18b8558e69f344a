package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account registered within one tenant.
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AppID       string    `gorm:"size:50;not null;uniqueIndex:idx_users_app_email;uniqueIndex:idx_users_app_phone" json:"-"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:255;not null;uniqueIndex:idx_users_app_email" json:"email"`
	PhoneNumber string    `gorm:"size:32;not null;uniqueIndex:idx_users_app_phone" json:"phone_number"`
	Password    string    `gorm:"not null" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
