package config

import (
	"fmt"
	"strings"
	"testing"

	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func TestMigrateSeedsReferenceData(t *testing.T) {
	db := openTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	var prices, categories, users int64
	db.Model(&models.Price{}).Count(&prices)
	db.Model(&models.Category{}).Count(&categories)
	db.Model(&models.User{}).Count(&users)

	if prices != 5 {
		t.Fatalf("seeded price count = %d, want 5", prices)
	}
	if categories != 6 {
		t.Fatalf("seeded category count = %d, want 6", categories)
	}
	if users != 0 {
		t.Fatalf("plain migration seeded %d users, want none", users)
	}

	// A second migration must not duplicate the reference rows.
	if err := Migrate(db); err != nil {
		t.Fatalf("repeated Migrate() error = %v", err)
	}
	db.Model(&models.Price{}).Count(&prices)
	if prices != 5 {
		t.Fatalf("price count after repeated migration = %d, want 5", prices)
	}
}

func TestResetAndMigrateSeedsDemoAccounts(t *testing.T) {
	db := openTestDB(t)

	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	stray := models.User{
		Username:     "leftover",
		Email:        "leftover@example.com",
		PasswordHash: "x",
		Role:         models.RoleBuyer,
	}
	if err := db.Create(&stray).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	if err := ResetAndMigrate(db); err != nil {
		t.Fatalf("ResetAndMigrate() error = %v", err)
	}

	var leftover int64
	db.Model(&models.User{}).Where("username = ?", "leftover").Count(&leftover)
	if leftover != 0 {
		t.Fatal("reset kept a pre-existing account")
	}

	var users int64
	db.Model(&models.User{}).Count(&users)
	if users != 2 {
		t.Fatalf("demo account count = %d, want 2", users)
	}

	var farmer models.User
	if err := db.Where("username = ?", "ramesh").First(&farmer).Error; err != nil {
		t.Fatalf("demo farmer missing: %v", err)
	}
	if farmer.Role != models.RoleFarmer || farmer.Location != "Punjab" {
		t.Fatalf("unexpected demo farmer: %+v", farmer)
	}
	if !utils.CheckPasswordHash("password123", farmer.PasswordHash) {
		t.Fatal("demo farmer password does not verify")
	}

	var buyer models.User
	if err := db.Where("username = ?", "anita").First(&buyer).Error; err != nil {
		t.Fatalf("demo buyer missing: %v", err)
	}
	if buyer.Role != models.RoleBuyer {
		t.Fatalf("demo buyer role = %v, want buyer", buyer.Role)
	}

	var prices int64
	db.Model(&models.Price{}).Count(&prices)
	if prices != 5 {
		t.Fatalf("price count after reset = %d, want 5", prices)
	}
}
