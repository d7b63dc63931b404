package services

import (
	"capacita/models"

	"github.com/google/uuid"
)

// Session is the authenticated caller of one request.
type Session struct {
	UserID   uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
}

func (s *Session) CanManageContent() bool {
	return s != nil && models.CanManageContent(s.Role)
}

func (s *Session) CanManageUsers() bool {
	return s != nil && models.CanManageUsers(s.Role)
}
