package config

import (
	"log"

	"kisanmandi_backend/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(
		&models.User{},
		&models.Crop{},
		&models.Transaction{},
		&models.Price{},
		&models.ChatMessage{},
		&models.Category{},
	)

	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database Migrations completed succesfully...")

	// Reference data must exist even on a plain migration
	SeedCategories(db)
	SeedPrices(db)

	return nil
}

func ResetAndMigrate(db *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Crop{},
		&models.Transaction{},
		&models.Price{},
		&models.ChatMessage{},
		&models.Category{},
	}

	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := db.AutoMigrate(tables...); err != nil {
		log.Printf("Failed to auto migrate: %v", err)
		return err
	}

	SeedCategories(db)
	SeedPrices(db)
	SeedUsers(db)

	log.Println("Database reset and migration completed successfully.")
	return nil
}
