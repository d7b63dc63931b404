package authRoutes

import (
	authController "capacita/controllers/auth"
	authValidators "capacita/validators/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes exposes password login. Only mounted with the local auth
// provider; the hosted auth service issues its own tokens.
func SetupAuthRoutes(app *fiber.App, h *authController.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/login", authValidators.Login(), h.Login)
}
