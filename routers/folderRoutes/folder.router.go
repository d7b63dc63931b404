package folderRoutes

import (
	folderController "capacita/controllers/folder"
	"capacita/middleware"
	"capacita/models"
	validators "capacita/validators/folder"

	"github.com/gofiber/fiber/v2"
)

func SetupFolderRoutes(app *fiber.App, sessions fiber.Handler, h *folderController.Controller) {
	group := app.Group("/carpetas", sessions)
	canManage := middleware.RequireRole(models.RoleAdmin, models.RoleSuperAdmin)

	group.Get("/", h.List)
	group.Post("/", canManage, validators.CreateFolder(), h.Create)
	group.Delete("/:id", canManage, h.Delete)
}
