package capacitacion

import (
	"context"
	"fmt"

	"capacita/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CleanupQueue is the compensating-action queue for stored files that are no
// longer referenced by any course but could not be deleted at the time.
type CleanupQueue struct {
	db          *gorm.DB
	storage     Storage
	log         *zap.Logger
	batchSize   int
	maxAttempts int
}

// NewCleanupQueue builds the queue. Tasks that failed maxAttempts times are
// parked: they stay in the table for inspection but are no longer swept.
func NewCleanupQueue(db *gorm.DB, storage Storage, log *zap.Logger, batchSize, maxAttempts int) *CleanupQueue {
	if batchSize <= 0 {
		batchSize = 100
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &CleanupQueue{db: db, storage: storage, log: log, batchSize: batchSize, maxAttempts: maxAttempts}
}

// Enqueue records paths for a later sweep. It never fails the caller: a queue
// write error is logged together with the paths so they can be removed by hand.
func (q *CleanupQueue) Enqueue(ctx context.Context, reason string, cause error, paths ...string) {
	if len(paths) == 0 {
		return
	}
	lastErr := ""
	if cause != nil {
		lastErr = cause.Error()
	}

	tasks := make([]models.StorageCleanupTask, 0, len(paths))
	for _, p := range paths {
		tasks = append(tasks, models.StorageCleanupTask{Path: p, Reason: reason, LastError: lastErr})
	}
	if err := q.db.WithContext(ctx).Create(&tasks).Error; err != nil {
		q.log.Error("orphaned storage objects could not be queued",
			zap.Strings("paths", paths), zap.String("reason", reason), zap.Error(err))
		return
	}
	q.log.Warn("storage objects queued for cleanup",
		zap.Strings("paths", paths), zap.String("reason", reason), zap.NamedError("cause", cause))
}

// Sweep removes one batch of queued objects and returns how many were cleared.
// When the batch call fails each path is retried alone, so one object the
// storage keeps refusing does not hold back the others.
func (q *CleanupQueue) Sweep(ctx context.Context) (int, error) {
	var tasks []models.StorageCleanupTask
	err := q.db.WithContext(ctx).
		Where("attempts < ?", q.maxAttempts).
		Order("id asc").
		Limit(q.batchSize).
		Find(&tasks).Error
	if err != nil {
		return 0, fmt.Errorf("load cleanup tasks: %w", err)
	}
	if len(tasks) == 0 {
		return 0, nil
	}

	paths := make([]string, len(tasks))
	for i, t := range tasks {
		paths[i] = t.Path
	}

	err = q.storage.Remove(ctx, paths)
	if err == nil {
		return q.clear(ctx, tasks)
	}
	if len(tasks) == 1 {
		q.fail(ctx, tasks[0], err)
		return 0, fmt.Errorf("remove queued objects: %w", err)
	}

	q.log.Warn("batch cleanup failed, retrying objects one by one", zap.Int("tasks", len(tasks)), zap.Error(err))
	var done []models.StorageCleanupTask
	var firstErr error
	for _, t := range tasks {
		if err := q.storage.Remove(ctx, []string{t.Path}); err != nil {
			q.fail(ctx, t, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		done = append(done, t)
	}

	cleared, err := q.clear(ctx, done)
	if err != nil {
		return cleared, err
	}
	if firstErr != nil {
		return cleared, fmt.Errorf("remove queued objects: %w", firstErr)
	}
	return cleared, nil
}

func (q *CleanupQueue) clear(ctx context.Context, tasks []models.StorageCleanupTask) (int, error) {
	if len(tasks) == 0 {
		return 0, nil
	}
	ids := make([]uint, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	if err := q.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.StorageCleanupTask{}).Error; err != nil {
		return 0, fmt.Errorf("clear cleanup tasks: %w", err)
	}
	return len(tasks), nil
}

// fail records the attempt. A task reaching maxAttempts is parked.
func (q *CleanupQueue) fail(ctx context.Context, task models.StorageCleanupTask, cause error) {
	err := q.db.WithContext(ctx).Model(&models.StorageCleanupTask{}).
		Where("id = ?", task.ID).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": cause.Error(),
		}).Error
	if err != nil {
		q.log.Error("recording cleanup attempt failed",
			zap.Uint("task_id", task.ID), zap.String("path", task.Path), zap.NamedError("cause", cause), zap.Error(err))
		return
	}
	if task.Attempts+1 >= q.maxAttempts {
		q.log.Error("storage object parked after repeated cleanup failures",
			zap.Uint("task_id", task.ID), zap.String("path", task.Path), zap.Int("attempts", task.Attempts+1), zap.Error(cause))
	}
}

// Parked counts the tasks the sweep has given up on.
func (q *CleanupQueue) Parked(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.WithContext(ctx).Model(&models.StorageCleanupTask{}).
		Where("attempts >= ?", q.maxAttempts).
		Count(&n).Error
	return n, err
}

// Pending counts the queued objects.
func (q *CleanupQueue) Pending(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.WithContext(ctx).Model(&models.StorageCleanupTask{}).Count(&n).Error
	return n, err
}
