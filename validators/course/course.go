package courseValidator

import (
	"encoding/json"
	"strings"

	"capacita/middleware"
	"capacita/services/capacitacion"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxTitleLen = 200

type rename struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// SaveCourse parses the multipart course form into a capacitacion.SaveInput.
// Rules that depend on the stored course (at least one video) are checked by
// the editor.
func SaveCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)
		in := &capacitacion.SaveInput{
			Title:               strings.TrimSpace(first(form.Value["title"])),
			Description:         strings.TrimSpace(first(form.Value["description"])),
			RemovedVideoURLs:    nonEmpty(form.Value["remove_videos"]),
			RemovedDocumentURLs: nonEmpty(form.Value["remove_documents"]),
			Renames:             map[string]string{},
		}

		// Validate Title
		if in.Title == "" {
			errors["title"] = "Title is required!"
		} else if len([]rune(in.Title)) > maxTitleLen {
			errors["title"] = "Title must be at most 200 characters long!"
		}

		// Validate Folder
		if raw := strings.TrimSpace(first(form.Value["folder_id"])); raw != "" {
			id, err := uuid.Parse(raw)
			if err != nil {
				errors["folder_id"] = "Folder id must be a valid UUID!"
			} else {
				in.FolderID = &id
			}
		}

		// Validate Renames
		if raw := strings.TrimSpace(first(form.Value["renames"])); raw != "" {
			var renames []rename
			if err := json.Unmarshal([]byte(raw), &renames); err != nil {
				errors["renames"] = "Renames must be a JSON list of {url, name}!"
			}
			for _, r := range renames {
				if r.URL != "" && strings.TrimSpace(r.Name) != "" {
					in.Renames[r.URL] = r.Name
				}
			}
		}

		for _, fh := range form.File["videos"] {
			in.NewVideos = append(in.NewVideos, capacitacion.UploadFromHeader(fh))
		}

		names := form.Value["document_names"]
		for i, fh := range form.File["documents"] {
			doc := capacitacion.DocumentUpload{Upload: capacitacion.UploadFromHeader(fh)}
			if i < len(names) {
				doc.Name = names[i]
			}
			in.NewDocuments = append(in.NewDocuments, doc)
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", in)
		return c.Next()
	}
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func nonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
