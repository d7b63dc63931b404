package catalog

import (
	"context"
	"fmt"
	"strings"

	"capacita/models"
	"capacita/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Folders struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewFolders(db *gorm.DB, log *zap.Logger) *Folders {
	return &Folders{db: db, log: log}
}

// List returns every folder, newest first.
func (f *Folders) List(ctx context.Context) ([]models.Folder, error) {
	folders := []models.Folder{}
	if err := f.db.WithContext(ctx).Order("created_at desc").Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

func (f *Folders) Create(ctx context.Context, name, description string) (*models.Folder, error) {
	folder := &models.Folder{
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if folder.Name == "" {
		v := services.NewValidationError()
		v.Add("name", "Folder name is required!")
		return nil, v
	}
	if err := f.db.WithContext(ctx).Create(folder).Error; err != nil {
		return nil, fmt.Errorf("create folder: %w", err)
	}
	f.log.Info("folder created", zap.String("folder_id", folder.ID.String()))
	return folder, nil
}

// Delete removes the folder and moves its courses to the root in one
// transaction. It returns how many courses were moved.
func (f *Folders) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	var moved int64
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Course{}).Where("carpeta_id = ?", id).Update("carpeta_id", nil)
		if res.Error != nil {
			return fmt.Errorf("detach courses: %w", res.Error)
		}
		moved = res.RowsAffected

		res = tx.Where("id = ?", id).Delete(&models.Folder{})
		if res.Error != nil {
			return fmt.Errorf("delete folder: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return services.ErrFolderNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	f.log.Info("folder deleted", zap.String("folder_id", id.String()), zap.Int64("moved_courses", moved))
	return moved, nil
}
