package courseRoutes

import (
	courseController "capacita/controllers/course"
	"capacita/middleware"
	"capacita/models"
	validators "capacita/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes registers the course page and the course editor routes.
func SetupCourseRoutes(app *fiber.App, sessions fiber.Handler, h *courseController.Controller) {
	group := app.Group("/capacitaciones", sessions)
	canManage := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)

	group.Get("/:id", h.Show)
	group.Post("/", canManage, validators.SaveCourse(), h.Create)
	group.Put("/:id", canManage, validators.SaveCourse(), h.Update)
	group.Delete("/:id", canManage, h.Delete)
}
