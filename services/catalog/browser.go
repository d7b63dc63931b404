// Package catalog lists and organizes folders and courses for the dashboard.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"capacita/models"
	"capacita/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Query is the dashboard scope. A nil FolderID is the root.
type Query struct {
	FolderID *uuid.UUID
	Search   string
}

type BrowseResult struct {
	CurrentFolder    *models.Folder  `json:"current_folder"`
	Folders          []models.Folder `json:"carpetas"`
	Courses          []models.Course `json:"capacitaciones"`
	Search           string          `json:"search"`
	CanManageContent bool            `json:"can_manage_content"`
	CanManageUsers   bool            `json:"can_manage_users"`
}

type Browser struct {
	db *gorm.DB
}

func NewBrowser(db *gorm.DB) *Browser {
	return &Browser{db: db}
}

// Browse lists what the dashboard shows for q.
//
// A search term matches course title or description anywhere in the tree.
// Folders are only listed at the root, filtered by name while searching.
func (b *Browser) Browse(ctx context.Context, session *services.Session, q Query) (*BrowseResult, error) {
	db := b.db.WithContext(ctx)
	term := strings.TrimSpace(q.Search)

	result := &BrowseResult{
		Folders:          []models.Folder{},
		Courses:          []models.Course{},
		Search:           term,
		CanManageContent: session.CanManageContent(),
		CanManageUsers:   session.CanManageUsers(),
	}

	if q.FolderID != nil {
		var folder models.Folder
		err := db.Where("id = ?", *q.FolderID).First(&folder).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrFolderNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("load folder: %w", err)
		}
		result.CurrentFolder = &folder
	} else {
		folders := db.Model(&models.Folder{})
		if term != "" {
			folders = folders.Where("LOWER(name) LIKE ? ESCAPE '!'", containsPattern(term))
		}
		if err := folders.Order("created_at desc").Find(&result.Folders).Error; err != nil {
			return nil, fmt.Errorf("list folders: %w", err)
		}
	}

	courses := db.Model(&models.Course{})
	switch {
	case term != "":
		p := containsPattern(term)
		courses = courses.Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", p, p)
	case q.FolderID != nil:
		courses = courses.Where("carpeta_id = ?", *q.FolderID)
	default:
		courses = courses.Where("carpeta_id IS NULL")
	}
	if err := courses.Order("created_at desc").Find(&result.Courses).Error; err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return result, nil
}

// containsPattern builds a lower-cased LIKE pattern with '!' as escape.
func containsPattern(term string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
