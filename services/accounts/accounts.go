// Package accounts manages portal users: the auth account and the profile
// row that carries the role.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"capacita/models"
	"capacita/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthAdmin is the privileged side of the auth backend.
type AuthAdmin interface {
	CreateUser(ctx context.Context, email, password string) (uuid.UUID, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

// Notifier tells a new user their account exists.
type Notifier interface {
	SendWelcome(ctx context.Context, email, fullName, role string) error
}

type CreateUserInput struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type UpdateUserInput struct {
	ID       uuid.UUID
	FullName string
	Role     string
}

type Service struct {
	db       *gorm.DB
	auth     AuthAdmin
	notifier Notifier
	log      *zap.Logger
}

// NewService wires the account manager. notifier may be nil.
func NewService(db *gorm.DB, auth AuthAdmin, notifier Notifier, log *zap.Logger) *Service {
	return &Service{db: db, auth: auth, notifier: notifier, log: log}
}

// CoerceRole maps a requested role to one the API may grant: "admin" when
// asked for exactly that, "viewer" otherwise.
func CoerceRole(role string) string {
	if role == models.RoleAdmin {
		return models.RoleAdmin
	}
	return models.RoleViewer
}

// List returns every profile ordered by name.
func (s *Service) List(ctx context.Context) ([]models.Profile, error) {
	profiles := []models.Profile{}
	if err := s.db.WithContext(ctx).Order("full_name asc").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// Create registers a pre-confirmed auth account and its profile. When the
// profile insert fails the auth account is deleted again.
func (s *Service) Create(ctx context.Context, in CreateUserInput) (*models.Profile, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	v := services.NewValidationError()
	if email == "" {
		v.Add("email", "Email is required!")
	}
	if in.Password == "" {
		v.Add("password", "Password is required!")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	id, err := s.auth.CreateUser(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	profile := &models.Profile{ID: id, FullName: strings.TrimSpace(in.FullName), Role: CoerceRole(in.Role)}
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		if delErr := s.auth.DeleteUser(ctx, id); delErr != nil {
			s.log.Error("auth account left without profile",
				zap.String("user_id", id.String()), zap.String("email", email), zap.Error(delErr))
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info("user created", zap.String("user_id", id.String()), zap.String("role", profile.Role))

	if s.notifier != nil {
		if err := s.notifier.SendWelcome(ctx, email, profile.FullName, profile.Role); err != nil {
			s.log.Warn("welcome mail failed", zap.String("user_id", id.String()), zap.Error(err))
		}
	}
	return profile, nil
}

// Update changes name and role. Superadmin profiles are never touched.
func (s *Service) Update(ctx context.Context, in UpdateUserInput) error {
	fullName := strings.TrimSpace(in.FullName)
	v := services.NewValidationError()
	if in.ID == uuid.Nil {
		v.Add("id", "User id is required!")
	}
	if fullName == "" {
		v.Add("fullName", "Full name is required!")
	}
	if in.Role != models.RoleViewer && in.Role != models.RoleAdmin {
		v.Add("role", "Role must be viewer or admin!")
	}
	if err := v.OrNil(); err != nil {
		return err
	}

	profile, err := s.find(ctx, in.ID)
	if err != nil {
		return err
	}
	if profile.IsSuperAdmin() {
		return services.ErrProtectedProfile
	}

	err = s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", in.ID).
		Updates(map[string]any{"full_name": fullName, "role": in.Role}).Error
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	s.log.Info("user updated", zap.String("user_id", in.ID.String()), zap.String("role", in.Role))
	return nil
}

// Delete removes the profile row, then the auth account.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		v := services.NewValidationError()
		v.Add("id", "User id is required!")
		return v
	}

	profile, err := s.find(ctx, id)
	switch {
	case errors.Is(err, services.ErrNotFound):
		// an auth account without profile is still removed
	case err != nil:
		return err
	case profile.IsSuperAdmin():
		return services.ErrProtectedProfile
	}

	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Profile{}).Error; err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.auth.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.log.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *Service) find(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &profile, nil
}
