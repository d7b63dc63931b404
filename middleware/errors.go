package middleware

import (
	"errors"

	"capacita/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse maps a service error onto the JSON envelope. Anything it does
// not recognize is logged and answered with 500 and fallback.
func ErrorResponse(c *fiber.Ctx, log *zap.Logger, err error, fallback string) error {
	if v, ok := services.AsValidation(err); ok {
		return ValidationErrorResponse(c, v.Fields)
	}
	switch {
	case errors.Is(err, services.ErrFolderNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Folder not found!", nil)
	case errors.Is(err, services.ErrNotFound):
		return JsonResponse(c, fiber.StatusNotFound, false, "Record not found!", nil)
	case errors.Is(err, services.ErrProtectedProfile):
		return JsonResponse(c, fiber.StatusForbidden, false, "Superadmin profiles cannot be modified!", nil)
	}

	log.Error(fallback, zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
	return JsonResponse(c, fiber.StatusInternalServerError, false, fallback, nil)
}
