// Package viewer builds the course page: normalized documents with preview
// and download links, and the default selection.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strings"

	"capacita/models"
	"capacita/services"
	"capacita/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	officeViewer  = "https://view.officeapps.live.com/op/embed.aspx?src="
	genericViewer = "https://docs.google.com/gview?url="
)

var (
	nativeTypes = map[string]bool{"pdf": true, "txt": true, "png": true, "jpg": true, "jpeg": true}
	officeTypes = map[string]bool{"doc": true, "docx": true, "xls": true, "xlsx": true, "ppt": true, "pptx": true}

	unsafeName = regexp.MustCompile(`[\\/:*?"<>|\x00-\x1f]+`)
	spaces     = regexp.MustCompile(`\s+`)
)

type Document struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	PreviewURL  string `json:"preview_url"`
	DownloadURL string `json:"download_url"`
}

type Video struct {
	URL         string `json:"url"`
	DownloadURL string `json:"download_url"`
}

// Page is everything the course page renders.
type Page struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	FolderID       *uuid.UUID `json:"carpeta_id"`
	Videos         []Video    `json:"videos"`
	Documents      []Document `json:"documents"`
	ActiveVideo    int        `json:"active_video"`
	ActiveDocument int        `json:"active_document"`
}

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Load(ctx context.Context, id uuid.UUID) (*Page, error) {
	var course models.Course
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load course: %w", err)
	}
	return NewPage(&course), nil
}

// NewPage builds the page for an already loaded course.
func NewPage(c *models.Course) *Page {
	p := &Page{
		ID:             c.ID,
		Title:          c.Title,
		Description:    c.Description,
		FolderID:       c.FolderID,
		Videos:         make([]Video, 0, len(c.VideoURLs)),
		ActiveVideo:    -1,
		ActiveDocument: -1,
	}

	for i, u := range c.VideoURLs {
		p.Videos = append(p.Videos, Video{URL: u, DownloadURL: DownloadURL(u, VideoDownloadName(c.Title, i))})
	}

	docs := c.Documents()
	p.Documents = make([]Document, 0, len(docs))
	for _, d := range docs {
		p.Documents = append(p.Documents, Document{
			Name:        d.Name,
			URL:         d.URL,
			PreviewURL:  PreviewURL(d.URL),
			DownloadURL: DownloadURL(d.URL, d.Name),
		})
	}

	if len(p.Videos) > 0 {
		p.ActiveVideo = 0
	}
	if len(p.Documents) > 0 {
		p.ActiveDocument = 0
	}
	return p
}

// PreviewURL picks how a document is shown inline: browser-native types as
// is, Office files through the Office embed viewer, anything else through
// the generic document viewer.
func PreviewURL(rawURL string) string {
	ext := strings.ToLower(extension(rawURL))
	switch {
	case nativeTypes[ext]:
		return rawURL
	case officeTypes[ext]:
		return officeViewer + utils.EncodeURIComponent(rawURL)
	default:
		return genericViewer + utils.EncodeURIComponent(rawURL) + "&embedded=true"
	}
}

// DownloadURL adds a download parameter so storage serves the file as an
// attachment named name, with the URL's extension appended when missing.
func DownloadURL(rawURL, name string) string {
	filename := SanitizeFilename(name)
	if ext := extension(rawURL); ext != "" && !strings.HasSuffix(strings.ToLower(filename), "."+strings.ToLower(ext)) {
		filename += "." + ext
	}

	sep := "?"
	if strings.Contains(rawURL, "?") {
		sep = "&"
	}
	return rawURL + sep + "download=" + utils.EncodeURIComponent(filename)
}

// VideoDownloadName is the file name offered for the i-th video of a course.
func VideoDownloadName(title string, i int) string {
	return fmt.Sprintf("Video_%d_%s", i+1, spaces.ReplaceAllString(strings.TrimSpace(title), "_"))
}

// SanitizeFilename drops path separators and characters that most file
// systems reject. An empty result becomes "archivo".
func SanitizeFilename(name string) string {
	name = unsafeName.ReplaceAllString(name, "_")
	name = strings.Trim(strings.TrimSpace(name), ".")
	if name == "" {
		return "archivo"
	}
	return name
}

// extension of the last path segment of rawURL, ignoring query and fragment.
func extension(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	base := path.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i < 0 || i == len(base)-1 {
		return ""
	}
	return base[i+1:]
}
