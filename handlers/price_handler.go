package handlers

import (
	"time"

	"kisanmandi_backend/internal/ws"
	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PriceHandler struct {
	DB  *gorm.DB
	Hub *ws.Hub
}

func NewPriceHandler(db *gorm.DB, hub *ws.Hub) *PriceHandler {
	return &PriceHandler{DB: db, Hub: hub}
}

// CreatePriceRequest
type CreatePriceRequest struct {
	CropName string  `json:"crop_name"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Source   string  `json:"source"`
}

// GetPrices - GET /api/prices
func (h *PriceHandler) GetPrices(c *fiber.Ctx) error {
	var prices []models.Price
	if err := h.DB.Order("date desc").Find(&prices).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch prices"})
	}
	return c.JSON(fiber.Map{"data": prices})
}

// CreatePrice - POST /api/prices
// Quotes are append-only reference data; only admins may add them.
func (h *PriceHandler) CreatePrice(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	if identity.Role != models.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only admins can add prices"})
	}

	var req CreatePriceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.CropName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Crop name is required"})
	}

	source := req.Source
	if source == "" {
		source = "demo"
	}

	price := models.Price{
		CropName: req.CropName,
		Location: req.Location,
		Price:    req.Price,
		Date:     time.Now(),
		Source:   source,
	}

	if err := h.DB.Create(&price).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create price"})
	}

	h.Hub.Publish("price_added", price)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Price added",
		"price_id": price.ID,
	})
}
