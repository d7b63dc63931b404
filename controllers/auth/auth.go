package authController

import (
	"context"
	"errors"

	"capacita/middleware"
	"capacita/providers/local"
	authValidator "capacita/validators/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

type Controller struct {
	auth Authenticator
	log  *zap.Logger
}

func New(auth Authenticator, log *zap.Logger) *Controller {
	return &Controller{auth: auth, log: log}
}

func (h *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	token, err := h.auth.Login(c.UserContext(), reqData.Email, reqData.Password)
	if errors.Is(err, local.ErrInvalidCredentials) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid email or password!", nil)
	}
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Login failed!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
	})
}
