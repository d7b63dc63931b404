package dashboardController

import (
	"capacita/middleware"
	"capacita/services/catalog"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Controller struct {
	browser *catalog.Browser
	log     *zap.Logger
}

func New(browser *catalog.Browser, log *zap.Logger) *Controller {
	return &Controller{browser: browser, log: log}
}

func (h *Controller) Browse(c *fiber.Ctx) error {
	q, ok := c.Locals("validatedQuery").(*catalog.Query)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	result, err := h.browser.Browse(c.UserContext(), middleware.SessionFrom(c), *q)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to load dashboard!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", result)
}

// Me returns the caller with the permission flags the portal UI gates on.
func (h *Controller) Me(c *fiber.Ctx) error {
	session := middleware.SessionFrom(c)
	if session == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"id":                 session.UserID,
		"full_name":          session.FullName,
		"role":               session.Role,
		"can_manage_content": session.CanManageContent(),
		"can_manage_users":   session.CanManageUsers(),
	})
}
