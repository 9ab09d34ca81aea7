package migration

import (
	"FoodSaver-Backend/entities"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		log.Errorf("Error creating uuid-ossp extension: %v", err)
		return err
	}

	if err := db.AutoMigrate(&entities.UserProfile{}); err != nil {
		log.Errorf("Error migrating user profile database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.FoodItem{}); err != nil {
		log.Errorf("Error migrating food item database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Transaction{}); err != nil {
		log.Errorf("Error migrating transaction database: %v", err)
		return err
	}

	log.Info("Database migration complete")
	return nil
}
