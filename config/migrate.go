package config

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/JerryLinyx/wikiquiz/models"
)

// MigrateDB runs database migrations
func MigrateDB(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Article{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migration completed successfully")
	return nil
}
