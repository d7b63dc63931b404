package dashboardValidator

import (
	"strings"

	"capacita/middleware"
	"capacita/services/catalog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Browse reads ?folder= and ?search= into a catalog.Query.
func Browse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := &catalog.Query{Search: strings.TrimSpace(c.Query("search"))}

		if raw := strings.TrimSpace(c.Query("folder")); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				return middleware.ValidationErrorResponse(c, map[string]string{"folder": "Folder id must be a valid UUID!"})
			}
			q.FolderID = &id
		}

		c.Locals("validatedQuery", q)
		return c.Next()
	}
}
