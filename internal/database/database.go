package database

import (
	"log"

	"capstone-collab-api/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB initializes the database connection and runs migrations
func InitDB(dsn string) {
	var err error

	// Using glebarez/sqlite which is a pure Go implementation (no CGO required).
	// The foreign_keys pragma must be on for ON DELETE CASCADE to fire when
	// a task row is deleted.
	DB, err = gorm.Open(sqlite.Open(dsn+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	// Auto-migrate the schema (it will create tables if they don't exist)
	err = DB.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.Submission{},
		&models.Attachment{},
		&models.TaskNote{},
	)

	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	log.Println("Database connected and migrated")
}

// GetDB returns the database connection
func GetDB() *gorm.DB {
	return DB
}
