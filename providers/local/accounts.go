package local

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"capacita/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrEmailTaken         = errors.New("a user with this email address has already been registered")
	ErrUserNotFound       = errors.New("user not found")
)

const tokenTTL = 24 * time.Hour

// Accounts is a password account store issuing the same HS256 tokens the
// hosted auth service issues.
type Accounts struct {
	db     *gorm.DB
	secret []byte
	now    func() time.Time
}

func NewAccounts(db *gorm.DB, secret string) *Accounts {
	return &Accounts{db: db, secret: []byte(secret), now: time.Now}
}

// CreateUser stores a confirmed account and returns its id.
func (a *Accounts) CreateUser(ctx context.Context, email, password string) (uuid.UUID, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var n int64
	if err := a.db.WithContext(ctx).Model(&models.AuthAccount{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return uuid.Nil, fmt.Errorf("look up account: %w", err)
	}
	if n > 0 {
		return uuid.Nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("hash password: %w", err)
	}

	account := models.AuthAccount{ID: uuid.New(), Email: email, PasswordHash: string(hash), EmailConfirmed: true}
	if err := a.db.WithContext(ctx).Create(&account).Error; err != nil {
		return uuid.Nil, fmt.Errorf("create account: %w", err)
	}
	return account.ID, nil
}

func (a *Accounts) DeleteUser(ctx context.Context, id uuid.UUID) error {
	res := a.db.WithContext(ctx).Where("id = ?", id).Delete(&models.AuthAccount{})
	if res.Error != nil {
		return fmt.Errorf("delete account: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Login checks the password and returns a signed access token.
func (a *Accounts) Login(ctx context.Context, email, password string) (string, error) {
	var account models.AuthAccount
	err := a.db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("load account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredentials
	}
	return a.GenerateJWT(account.ID, account.Email)
}

// GenerateJWT signs an access token for the account.
func (a *Accounts) GenerateJWT(id uuid.UUID, email string) (string, error) {
	now := a.now()
	claims := jwt.MapClaims{
		"sub":   id.String(),
		"email": email,
		"role":  "authenticated",
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}
