package models

import (
	"time"

	"github.com/google/uuid"
)

// AuthAccount backs the local auth provider. With the hosted provider the
// accounts live in the auth service and this table stays empty.
type AuthAccount struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email          string    `gorm:"uniqueIndex;not null"`
	PasswordHash   string    `gorm:"not null"`
	EmailConfirmed bool      `gorm:"default:false"`
	CreatedAt      time.Time
}

func (AuthAccount) TableName() string { return "auth_accounts" }
