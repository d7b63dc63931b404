package folderController

import (
	"capacita/middleware"
	"capacita/services/catalog"
	folderValidator "capacita/validators/folder"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Controller struct {
	folders *catalog.Folders
	log     *zap.Logger
}

func New(folders *catalog.Folders, log *zap.Logger) *Controller {
	return &Controller{folders: folders, log: log}
}

func (h *Controller) List(c *fiber.Ctx) error {
	folders, err := h.folders.List(c.UserContext())
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to fetch folders!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Folders fetched successfully!", folders)
}

func (h *Controller) Create(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedFolder").(*folderValidator.CreateFolderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	folder, err := h.folders.Create(c.UserContext(), reqData.Name, reqData.Description)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to create folder!")
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Folder created successfully!", folder)
}

// Delete removes the folder; its courses move to the root.
func (h *Controller) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Folder not found!", nil)
	}

	moved, err := h.folders.Delete(c.UserContext(), id)
	if err != nil {
		return middleware.ErrorResponse(c, h.log, err, "Failed to delete folder!")
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Folder deleted successfully!", fiber.Map{"moved_courses": moved})
}
