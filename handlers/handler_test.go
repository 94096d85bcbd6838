package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"kisanmandi_backend/internal/advisor"
	"kisanmandi_backend/internal/ws"
	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestApp builds a fiber app with the full route table against a
// fresh in-memory database.
func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Crop{},
		&models.Transaction{},
		&models.Price{},
		&models.ChatMessage{},
		&models.Category{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	hub := ws.NewHub()
	go hub.Run()

	engine := advisor.NewEngine("") // fallback-only in tests

	app := fiber.New()

	authHandler := NewAuthHandler(db)
	cropHandler := NewCropHandler(db, hub)
	priceHandler := NewPriceHandler(db, hub)
	categoryHandler := NewCategoryHandler(db)
	transactionHandler := NewTransactionHandler(db, "rzp_test_key")
	chatHandler := NewChatHandler(db, engine)

	api := app.Group("/api")
	api.Post("/signup", authHandler.Signup)
	api.Post("/login", authHandler.Login)
	api.Post("/logout", utils.AuthMiddleware, authHandler.Logout)
	api.Get("/user", utils.AuthMiddleware, authHandler.GetUser)

	api.Get("/crops", cropHandler.GetCrops)
	api.Get("/crops/:id", cropHandler.GetCrop)
	api.Post("/crops", utils.AuthMiddleware, cropHandler.CreateCrop)
	api.Put("/crops/:id", utils.AuthMiddleware, cropHandler.UpdateCrop)
	api.Delete("/crops/:id", utils.AuthMiddleware, cropHandler.DeleteCrop)
	api.Get("/my-crops", utils.AuthMiddleware, cropHandler.GetMyCrops)
	api.Get("/categories", categoryHandler.GetCategories)

	api.Get("/prices", priceHandler.GetPrices)
	api.Post("/prices", utils.AuthMiddleware, priceHandler.CreatePrice)

	api.Post("/transactions", utils.AuthMiddleware, transactionHandler.CreateTransaction)
	api.Get("/transactions/:id", utils.AuthMiddleware, transactionHandler.GetTransaction)
	api.Post("/transactions/:id/payment", utils.AuthMiddleware, transactionHandler.UpdatePayment)

	api.Post("/chat", utils.AuthMiddleware, chatHandler.Chat)
	api.Get("/chat/history", utils.AuthMiddleware, chatHandler.GetHistory)

	return app, db
}

// createUser inserts a user with password "password123".
func createUser(t *testing.T, db *gorm.DB, username string, role models.Role) models.User {
	t.Helper()

	hash, err := utils.HashPassword("password123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		Location:     "Punjab",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func bearerToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := utils.GenerateToken(&user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return "Bearer " + token
}

// doJSON performs a JSON request against the test app and decodes the
// response body into a generic map.
func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}

	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("response %s %s is not JSON: %v (%s)", method, path, err, raw)
		}
	}
	return resp.StatusCode, decoded
}

func wantStatus(t *testing.T, got, want int, body map[string]interface{}) {
	t.Helper()
	if got != want {
		t.Fatalf("status = %d, want %d (body: %v)", got, want, body)
	}
}
