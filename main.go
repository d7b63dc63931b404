package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"capacita/config"
	"capacita/database"
	"capacita/utils"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	cfg := config.LoadConfig()

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := buildServer(cfg, db, logger)

	scheduler, err := utils.InitializeCleanupScheduler(ctx, cfg.CleanupSchedule, srv.cleanup, logger)
	if err != nil {
		logger.Fatal("cleanup scheduler failed", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		if scheduler != nil {
			<-scheduler.Stop().Done()
		}
		if err := srv.app.ShutdownWithTimeout(15 * time.Second); err != nil {
			logger.Error("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("server is running",
		zap.String("port", cfg.Port),
		zap.String("storage", cfg.StorageProvider),
		zap.String("auth", cfg.AuthProvider))
	if err := srv.app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	zcfg := zap.NewDevelopmentConfig()
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	}
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
