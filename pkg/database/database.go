package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront-service/pkg/config"
)

var db *gorm.DB

// InitDB opens the Postgres connection and applies pool settings. The schema
// itself (partitioned tables, trigger, routines, views, see
// scripts/schema.sql) is owned by the database and consumed by name, so no
// migrations run here: AutoMigrate cannot express range partitioning and must
// not try to recreate objects the application only calls.
func InitDB(cfg *config.Config) error {
	logLevel := logger.Error
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	pgConfig := postgres.Config{
		DSN:                  cfg.Database.GetDSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statement usage
	}

	var err error
	db, err = gorm.Open(postgres.New(pgConfig), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}
