package main

import (
	"errors"

	"capacita/config"
	authController "capacita/controllers/auth"
	courseController "capacita/controllers/course"
	dashboardController "capacita/controllers/dashboard"
	folderController "capacita/controllers/folder"
	userController "capacita/controllers/userControllers"
	"capacita/middleware"
	"capacita/providers/local"
	authRoutes "capacita/routers/authRoutes"
	courseRoutes "capacita/routers/courseRoutes"
	dashboardRoutes "capacita/routers/dashboardRoutes"
	folderRoutes "capacita/routers/folderRoutes"
	userRoutes "capacita/routers/userRoutes"
	"capacita/services/accounts"
	"capacita/services/capacitacion"
	"capacita/services/catalog"
	"capacita/services/viewer"
	"capacita/supabase"
	"capacita/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type server struct {
	app     *fiber.App
	cleanup *capacitacion.CleanupQueue
}

// buildServer wires providers, services and routes for cfg.
func buildServer(cfg *config.Config, db *gorm.DB, log *zap.Logger) *server {
	app := fiber.New(fiber.Config{
		AppName:      "capacitaciones",
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ErrorHandler: errorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CorsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	var storage capacitacion.Storage
	if cfg.StorageProvider == config.ProviderLocal {
		disk := local.NewDiskStorage(cfg.LocalStorageDir, cfg.StorageBucket, cfg.PublicBaseURL)
		app.Static(disk.PublicPrefix(), disk.Root())
		storage = disk
	} else {
		storage = supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.StorageBucket, cfg.HTTPTimeout)
	}

	var authAdmin accounts.AuthAdmin
	if cfg.AuthProvider == config.ProviderLocal {
		localAccounts := local.NewAccounts(db, cfg.JWTSecret)
		authRoutes.SetupAuthRoutes(app, authController.New(localAccounts, log))
		authAdmin = localAccounts
	} else {
		authAdmin = supabase.NewAuthAdminClient(cfg.SupabaseURL, cfg.SupabaseKey, cfg.HTTPTimeout)
	}

	var notifier accounts.Notifier
	if cfg.SendgridAPIKey != "" {
		notifier = utils.NewMailer(cfg, log)
	}

	cleanup := capacitacion.NewCleanupQueue(db, storage, log, cfg.CleanupBatchSize, cfg.CleanupMaxAttempts)
	editor := capacitacion.NewEditor(db, storage, cfg.StorageBucket, cleanup, log)
	deleter := capacitacion.NewDeleter(db, storage, cfg.StorageBucket, cleanup, log)

	sessions := middleware.Sessions(db, cfg.JWTSecret, log)

	dashboardRoutes.SetupDashboardRoutes(app, sessions, dashboardController.New(catalog.NewBrowser(db), log))
	folderRoutes.SetupFolderRoutes(app, sessions, folderController.New(catalog.NewFolders(db, log), log))
	courseRoutes.SetupCourseRoutes(app, sessions, courseController.New(editor, deleter, viewer.NewService(db), log))
	userRoutes.SetupUserRoutes(app, sessions, userController.New(accounts.NewService(db, authAdmin, notifier, log), log))

	return &server{app: app, cleanup: cleanup}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return middleware.JsonResponse(c, code, false, err.Error(), nil)
}
