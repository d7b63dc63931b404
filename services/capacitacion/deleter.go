package capacitacion

import (
	"context"
	"errors"
	"fmt"

	"capacita/models"
	"capacita/services"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deleter removes courses together with their stored files.
type Deleter struct {
	db      *gorm.DB
	storage Storage
	bucket  string
	cleanup *CleanupQueue
	log     *zap.Logger
}

func NewDeleter(db *gorm.DB, storage Storage, bucket string, cleanup *CleanupQueue, log *zap.Logger) *Deleter {
	return &Deleter{db: db, storage: storage, bucket: bucket, cleanup: cleanup, log: log}
}

// Delete removes every stored file of the course in one batch, then the row.
// A storage failure does not stop the row delete; the paths go to the cleanup
// queue instead.
func (d *Deleter) Delete(ctx context.Context, id uuid.UUID) error {
	var course models.Course
	err := d.db.WithContext(ctx).
		Select("id", "video_urls", "archivos", "pdf_urls").
		Where("id = ?", id).
		First(&course).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return services.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("load course: %w", err)
	}

	paths := ExtractPaths(course.AttachmentURLs(), d.bucket)
	if len(paths) > 0 {
		if err := d.storage.Remove(ctx, paths); err != nil {
			d.log.Warn("removing course files failed",
				zap.String("course_id", id.String()), zap.Strings("paths", paths), zap.Error(err))
			d.cleanup.Enqueue(ctx, models.CleanupReasonRemoved, err, paths...)
		}
	}

	res := d.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Course{})
	if res.Error != nil {
		return fmt.Errorf("delete course: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}

	d.log.Info("course deleted", zap.String("course_id", id.String()), zap.Int("files", len(paths)))
	return nil
}
