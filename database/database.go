package database

import (
	"fmt"

	"storefront/config"
	"storefront/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the database backing the durable cart record: a local SQLite
// file by default, or Postgres when CART_STORE=postgres.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.CartStore {
	case config.StorePostgres:
		dialector = postgres.Open(cfg.DatabaseURL)
	case config.StoreSQLite:
		dialector = sqlite.Open(cfg.CartDBPath)
	default:
		return nil, fmt.Errorf("cart store %q is not a database", cfg.CartStore)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	if cfg.CartStore == config.StoreSQLite {
		// One writer at a time; SQLite serializes writes anyway.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Record{}); err != nil {
		return fmt.Errorf("failed to migrate kv_records: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
