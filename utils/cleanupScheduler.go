package utils

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Sweeper clears one batch of orphaned storage objects.
type Sweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// RunCleanupSweep runs one sweep and logs the outcome.
func RunCleanupSweep(ctx context.Context, sweeper Sweeper, log *zap.Logger) {
	cleared, err := sweeper.Sweep(ctx)
	if err != nil {
		log.Warn("storage cleanup sweep failed", zap.Int("cleared", cleared), zap.Error(err))
		return
	}
	if cleared > 0 {
		log.Info("storage cleanup sweep", zap.Int("cleared", cleared))
	}
}

// InitializeCleanupScheduler starts the cron job that drains the storage
// cleanup queue. An empty schedule disables it and returns a nil scheduler.
func InitializeCleanupScheduler(ctx context.Context, schedule string, sweeper Sweeper, log *zap.Logger) (*cron.Cron, error) {
	if schedule == "" {
		log.Info("storage cleanup scheduler disabled")
		return nil, nil
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() { RunCleanupSweep(ctx, sweeper, log) }); err != nil {
		return nil, fmt.Errorf("schedule storage cleanup %q: %w", schedule, err)
	}
	c.Start()

	log.Info("storage cleanup scheduler started", zap.String("schedule", schedule))
	return c, nil
}
