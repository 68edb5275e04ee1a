package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"elearn/config"
	"elearn/store"
)

// DbInstance struct holds the active store
type DbInstance struct {
	Store store.Store
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the store selected by STORE_DRIVER and saves it globally.
func ConnectDb() {
	st, err := Open(config.AppConfig)
	if err != nil {
		log.Fatalf("Failed to open %s store: %v", config.AppConfig.StoreDriver, err)
	}
	Database = DbInstance{Store: st}
}

// Open builds a store for cfg without touching the global instance.
func Open(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case "", "file":
		log.Printf("Using flat-file store at %s", cfg.DBPath)
		return store.OpenFileStore(cfg.DBPath)
	case "sqlite":
		log.Printf("Using sqlite store at %s", cfg.SQLitePath)
		return openGorm(sqlite.Open(cfg.SQLitePath))
	case "postgres":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
		)
		return openGorm(postgres.Open(dsn))
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openGorm(dialector gorm.Dialector) (store.Store, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	st := store.NewGormStore(db)
	if err := runMigrations(st); err != nil {
		return nil, err
	}
	return st, nil
}

// runMigrations performs database migrations
func runMigrations(st *store.GormStore) error {
	log.Println("Running Migrations...")
	if err := st.Migrate(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	log.Println("Migrations completed successfully.")
	return nil
}
