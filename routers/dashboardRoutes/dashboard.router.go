package dashboardRoutes

import (
	dashboardController "capacita/controllers/dashboard"
	validators "capacita/validators/dashboard"

	"github.com/gofiber/fiber/v2"
)

func SetupDashboardRoutes(app *fiber.App, sessions fiber.Handler, h *dashboardController.Controller) {
	app.Get("/me", sessions, h.Me)
	app.Get("/dashboard", sessions, validators.Browse(), h.Browse)
}
