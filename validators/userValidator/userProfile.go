package userValidator

import (
	"capacita/middleware"
	"capacita/validators"

	"github.com/gofiber/fiber/v2"
)

// The user management API answers bad input with {"error": "..."} and 400,
// so these validators report a single message instead of a field map.

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"notblank,max=120"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	ID       string `json:"id" validate:"required,uuid"`
	FullName string `json:"fullName" validate:"notblank,max=120"`
	Role     string `json:"role" validate:"required,oneof=viewer admin"`
}

type DeleteUserRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

func CreateUser() fiber.Handler {
	return bind[CreateUserRequest]("email", "password", "fullName")
}

func UpdateUser() fiber.Handler {
	return bind[UpdateUserRequest]("id", "fullName", "role")
}

func DeleteUser() fiber.Handler {
	return bind[DeleteUserRequest]("id")
}

func bind[T any](order ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(T)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.AdminError(c, "Invalid request body!")
		}
		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.AdminError(c, validators.First(errors, order...))
		}
		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}
