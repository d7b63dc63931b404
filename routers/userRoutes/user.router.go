package userRoutes

import (
	userController "capacita/controllers/userControllers"
	"capacita/middleware"
	"capacita/models"
	validators "capacita/validators/userValidator"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes registers the user management API. Every route needs a
// superadmin session.
func SetupUserRoutes(app *fiber.App, sessions fiber.Handler, h *userController.Controller) {
	api := app.Group("/api", sessions, middleware.RequireRole(models.RoleSuperAdmin))

	api.Get("/users", h.List)
	api.Post("/create-user", validators.CreateUser(), h.Create)
	api.Put("/update-user", validators.UpdateUser(), h.Update)
	api.Delete("/delete-user", validators.DeleteUser(), h.Delete)
}
