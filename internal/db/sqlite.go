// Package db opens the SQLite database used for request history.
package db

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/quillcraft/quillcraft/internal/db/models"
)

// InitDB initializes the SQLite database connection and runs migrations.
func InitDB(dbPath string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	// Monitor writes arrive from many goroutines; serialize them on one
	// connection.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.Exec("PRAGMA busy_timeout = 5000").Error; err != nil {
		log.Printf("⚠️ Failed to set sqlite busy_timeout: %v", err)
	}

	if err := db.AutoMigrate(&models.ParaphraseLog{}); err != nil {
		return nil, err
	}

	log.Printf("🗄️  Database ready: %s", dbPath)
	return db, nil
}
