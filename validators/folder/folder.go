package folderValidator

import (
	"capacita/middleware"
	"capacita/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateFolderRequest struct {
	Name        string `json:"name" form:"name" validate:"notblank,max=120"`
	Description string `json:"description" form:"description" validate:"max=1000"`
}

func CreateFolder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateFolderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errors := validators.Struct(reqData); len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedFolder", reqData)
		return c.Next()
	}
}
