package database

import (
	"fmt"
	"time"

	"capacita/config"
	"capacita/models"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured database, tunes the pool and runs migrations.
func Open(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return nil, err
	}

	gormCfg := &gorm.Config{}
	if cfg.IsProduction() {
		gormCfg.Logger = logger.Default.LogMode(logger.Warn)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxIdleConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	switch {
	case !cfg.DBAutoMigrate:
	case cfg.DBDriver == "mysql":
		// uuid column types are postgres/sqlite only; mysql schemas are provisioned by hand
		log.Warn("auto migration skipped for mysql")
	default:
		if err := Migrate(db, log); err != nil {
			return nil, err
		}
	}

	log.Info("database connected", zap.String("driver", cfg.DBDriver))
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate creates or updates every table the portal owns.
func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running migrations")

	err := db.AutoMigrate(
		&models.Profile{},
		&models.Folder{},
		&models.Course{},
		&models.StorageCleanupTask{},
		&models.AuthAccount{},
	)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	log.Info("migrations completed")
	return nil
}
