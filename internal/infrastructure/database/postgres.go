package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const connectAttempts = 10

// ConnectPostgres opens dsn, retrying while the database comes up, and
// migrates the given models.
func ConnectPostgres(dsn string, log *zap.Logger, autoMigrateModels ...any) (*gorm.DB, error) {
	var db *gorm.DB
	var err error
	for i := 0; i < connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			log.Info("connected to postgres")
			if len(autoMigrateModels) > 0 {
				if err := db.AutoMigrate(autoMigrateModels...); err != nil {
					return nil, fmt.Errorf("auto migrate: %w", err)
				}
			}
			return db, nil
		}
		log.Warn("postgres connection failed", zap.Int("attempt", i+1), zap.Int("of", connectAttempts), zap.Error(err))
		time.Sleep(2 * time.Second)
	}
	return nil, fmt.Errorf("connect postgres after %d attempts: %w", connectAttempts, err)
}

// ClosePostgres closes the underlying pool.
func ClosePostgres(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get database instance: %w", err)
	}
	return sqlDB.Close()
}
