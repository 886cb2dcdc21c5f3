package database

import (
	"github.com/yeremiapane/food-catalog/models"
	"github.com/yeremiapane/food-catalog/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Food{}); err != nil {
		return err
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
	return nil
}
