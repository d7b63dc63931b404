package courseController

import (
	"errors"

	"capacita/middleware"
	"capacita/services"
	"capacita/services/capacitacion"
	"capacita/services/viewer"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	editor  *capacitacion.Editor
	deleter *capacitacion.Deleter
	viewer  *viewer.Service
	log     *zap.Logger
}

func New(editor *capacitacion.Editor, deleter *capacitacion.Deleter, viewer *viewer.Service, log *zap.Logger) *Controller {
	return &Controller{editor: editor, deleter: deleter, viewer: viewer, log: log}
}

// Show returns the course page: normalized documents with preview and
// download links.
func (h *Controller) Show(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	page, err := h.viewer.Load(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to fetch course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", page)
}

func (h *Controller) Create(c *fiber.Ctx) error {
	in, ok := c.Locals("validatedCourse").(*capacitacion.SaveInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := h.editor.Save(c.UserContext(), nil, *in)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to create course!")
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (h *Controller) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	in, ok := c.Locals("validatedCourse").(*capacitacion.SaveInput)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	existing, err := h.editor.Find(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to update course!")
	}

	course, err := h.editor.Save(c.UserContext(), existing, *in)
	if errors.Is(err, services.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to update course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func (h *Controller) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	err = h.deleter.Delete(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to delete course!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
