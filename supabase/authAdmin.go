package supabase

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
)

// AuthAdminClient wraps the administrative user endpoints of the auth service.
type AuthAdminClient struct {
	http *resty.Client
}

func NewAuthAdminClient(baseURL, serviceKey string, timeout time.Duration) *AuthAdminClient {
	return &AuthAdminClient{http: newRestyClient(baseURL, serviceKey, timeout)}
}

type adminUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// CreateUser registers an already confirmed account and returns its id.
func (a *AuthAdminClient) CreateUser(ctx context.Context, email, password string) (uuid.UUID, error) {
	var created adminUser
	resp, err := a.http.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"email":         email,
			"password":      password,
			"email_confirm": true,
		}).
		SetResult(&created).
		SetError(&APIError{}).
		Post("/auth/v1/admin/users")
	if err := checkResponse(resp, err, "create user"); err != nil {
		return uuid.Nil, err
	}

	id, err := uuid.Parse(created.ID)
	if err != nil {
		return uuid.Nil, errors.New("create user: auth service returned no user id")
	}
	return id, nil
}

func (a *AuthAdminClient) DeleteUser(ctx context.Context, id uuid.UUID) error {
	resp, err := a.http.R().
		SetContext(ctx).
		SetError(&APIError{}).
		Delete("/auth/v1/admin/users/" + id.String())
	return checkResponse(resp, err, "delete user")
}
