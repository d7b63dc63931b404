package userController

import (
	"errors"

	"capacita/middleware"
	"capacita/services"
	"capacita/services/accounts"
	userValidator "capacita/validators/userValidator"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Controller serves the user management API. Responses are {"message"} on
// success and {"error"} with 400 on failure.
type Controller struct {
	accounts *accounts.Service
	log      *zap.Logger
}

func New(accounts *accounts.Service, log *zap.Logger) *Controller {
	return &Controller{accounts: accounts, log: log}
}

func (h *Controller) List(c *fiber.Ctx) error {
	profiles, err := h.accounts.List(c.UserContext())
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{"users": profiles})
}

func (h *Controller) Create(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*userValidator.CreateUserRequest)
	if !ok {
		return middleware.AdminError(c, "Invalid request data!")
	}

	_, err := h.accounts.Create(c.UserContext(), accounts.CreateUserInput{
		Email:    reqData.Email,
		Password: reqData.Password,
		FullName: reqData.FullName,
		Role:     reqData.Role,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return middleware.AdminMessage(c, "Usuario creado exitosamente")
}

func (h *Controller) Update(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*userValidator.UpdateUserRequest)
	if !ok {
		return middleware.AdminError(c, "Invalid request data!")
	}

	err := h.accounts.Update(c.UserContext(), accounts.UpdateUserInput{
		ID:       uuid.MustParse(reqData.ID),
		FullName: reqData.FullName,
		Role:     reqData.Role,
	})
	if err != nil {
		return h.fail(c, err)
	}
	return middleware.AdminMessage(c, "Usuario actualizado")
}

func (h *Controller) Delete(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUser").(*userValidator.DeleteUserRequest)
	if !ok {
		return middleware.AdminError(c, "Invalid request data!")
	}

	if err := h.accounts.Delete(c.UserContext(), uuid.MustParse(reqData.ID)); err != nil {
		return h.fail(c, err)
	}
	return middleware.AdminMessage(c, "Usuario eliminado")
}

func (h *Controller) fail(c *fiber.Ctx, err error) error {
	if v, ok := services.AsValidation(err); ok {
		return middleware.AdminError(c, v.Error())
	}
	if !errors.Is(err, services.ErrProtectedProfile) && !errors.Is(err, services.ErrNotFound) {
		h.log.Warn("user management request failed", zap.String("path", c.Path()), zap.Error(err))
	}
	return middleware.AdminError(c, err.Error())
}
