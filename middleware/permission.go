package middleware

import (
	"slices"

	"github.com/gofiber/fiber/v2"
)

// RequireRole lets the request through only when the session role is one of roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session := SessionFrom(c)
		if session == nil {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: session not found", nil)
		}
		if !slices.Contains(roles, session.Role) {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
		return c.Next()
	}
}
