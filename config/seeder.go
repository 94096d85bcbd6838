package config

import (
	"errors"
	"log"
	"time"

	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"gorm.io/gorm"
)

// SeedPrices inserts the demo reference quotes. Idempotent: a crop that
// already has a quote is skipped so appended quotes survive restarts.
func SeedPrices(db *gorm.DB) {
	log.Println("Seeding demo prices...")

	now := time.Now()
	prices := []models.Price{
		{CropName: "Wheat", Location: "Punjab", Price: 2200, Date: now, Source: "demo"},
		{CropName: "Rice", Location: "Karnataka", Price: 3500, Date: now, Source: "demo"},
		{CropName: "Cotton", Location: "Gujarat", Price: 5500, Date: now, Source: "demo"},
		{CropName: "Sugarcane", Location: "Maharashtra", Price: 1800, Date: now, Source: "demo"},
		{CropName: "Tomato", Location: "Himachal", Price: 4000, Date: now, Source: "demo"},
	}

	for _, price := range prices {
		var existing models.Price
		err := db.Where("crop_name = ?", price.CropName).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&price).Error; err != nil {
				log.Printf("Failed to seed price for %s: %v", price.CropName, err)
			}
		}
	}
}

// SeedCategories inserts the crop categories used by listing filters.
func SeedCategories(db *gorm.DB) {
	categories := []models.Category{
		{Name: "Cereal", Slug: "cereal"},
		{Name: "Vegetable", Slug: "vegetable"},
		{Name: "Fruit", Slug: "fruit"},
		{Name: "Spice", Slug: "spice"},
		{Name: "Pulse", Slug: "pulse"},
		{Name: "Cash Crop", Slug: "cash_crop"},
	}

	for _, category := range categories {
		var existing models.Category
		err := db.Where("slug = ?", category.Slug).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&category).Error; err != nil {
				log.Printf("Failed to seed category %s: %v", category.Slug, err)
			}
		}
	}
}

// SeedUsers creates demo accounts for local development.
func SeedUsers(db *gorm.DB) {
	log.Println("Seeding users...")

	hash, _ := utils.HashPassword("password123")

	users := []models.User{
		{
			Username:     "ramesh",
			Email:        "ramesh@example.com",
			PasswordHash: hash,
			Role:         models.RoleFarmer,
			Location:     "Punjab",
		},
		{
			Username:     "anita",
			Email:        "anita@example.com",
			PasswordHash: hash,
			Role:         models.RoleBuyer,
			Location:     "Delhi",
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user).Error; err != nil {
				log.Printf("Failed to seed user %s: %v", user.Username, err)
			} else {
				log.Printf("User seeded: %s (ID: %d)", user.Username, user.ID)
			}
		} else {
			log.Printf("User already exists: %s", user.Username)
		}
	}

	log.Println("Seeding complete.")
}
