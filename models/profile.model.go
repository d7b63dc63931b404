package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleViewer     = "viewer"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

// Profile mirrors an auth account with the portal role attached to it.
type Profile struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FullName  string    `json:"full_name" gorm:"default:''"`
	Role      string    `json:"role" gorm:"type:varchar(20);default:'viewer';index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

func (p Profile) IsSuperAdmin() bool { return p.Role == RoleSuperAdmin }

// CanManageContent reports whether the role may create, edit and delete folders and courses.
func CanManageContent(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// CanManageUsers reports whether the role may open the user management panel.
func CanManageUsers(role string) bool {
	return role == RoleSuperAdmin
}
