package handlers

import (
	"strconv"

	"kisanmandi_backend/internal/ws"
	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CropHandler struct {
	DB  *gorm.DB
	Hub *ws.Hub
}

func NewCropHandler(db *gorm.DB, hub *ws.Hub) *CropHandler {
	return &CropHandler{DB: db, Hub: hub}
}

// CreateCropRequest
type CreateCropRequest struct {
	CropName     string  `json:"crop_name"`
	Category     string  `json:"category"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	PricePerUnit float64 `json:"price_per_unit"`
	Description  string  `json:"description"`
	ImageURL     string  `json:"image_url"`
}

// UpdateCropRequest carries the mutable listing fields. Pointers so that
// omitted fields keep their current values.
type UpdateCropRequest struct {
	CropName     *string  `json:"crop_name"`
	Quantity     *float64 `json:"quantity"`
	PricePerUnit *float64 `json:"price_per_unit"`
	Description  *string  `json:"description"`
	Status       *string  `json:"status"`
}

// CreateCrop - POST /api/crops
func (h *CropHandler) CreateCrop(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	if identity.Role != models.RoleFarmer {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Only farmers can create listings"})
	}

	var req CreateCropRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	// The listing inherits the farmer's registered location.
	var farmer models.User
	if err := h.DB.First(&farmer, identity.UserID).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	unit := req.Unit
	if unit == "" {
		unit = "kg"
	}

	crop := models.Crop{
		FarmerID:     identity.UserID,
		CropName:     req.CropName,
		Category:     req.Category,
		Quantity:     req.Quantity,
		Unit:         unit,
		PricePerUnit: req.PricePerUnit,
		Description:  req.Description,
		Location:     farmer.Location,
		ImageURL:     req.ImageURL,
		Status:       models.CropAvailable,
	}

	if err := h.DB.Create(&crop).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create listing"})
	}

	h.Hub.Publish("crop_listed", crop)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Crop listed successfully",
		"crop_id": crop.ID,
	})
}

// GetCrops - GET /api/crops
func (h *CropHandler) GetCrops(c *fiber.Ctx) error {
	var crops []models.Crop
	query := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, email, role, phone, location")
	}).Where("status = ?", models.CropAvailable)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if location := c.Query("location"); location != "" {
		query = query.Where("location = ?", location)
	}

	query = query.Order("created_at desc")

	if err := query.Find(&crops).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch listings"})
	}

	return c.JSON(fiber.Map{"data": crops})
}

// GetCrop - GET /api/crops/:id
func (h *CropHandler) GetCrop(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var crop models.Crop

	if err := h.DB.Preload("Seller", func(db *gorm.DB) *gorm.DB {
		return db.Select("id, username, email, role, phone, location")
	}).First(&crop, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Crop not found"})
	}

	return c.JSON(fiber.Map{"data": crop})
}

// GetMyCrops - GET /api/my-crops
func (h *CropHandler) GetMyCrops(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var crops []models.Crop
	if err := h.DB.Where("farmer_id = ?", identity.UserID).
		Order("created_at desc").Find(&crops).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch listings"})
	}

	return c.JSON(fiber.Map{"data": crops})
}

// UpdateCrop - PUT /api/crops/:id
func (h *CropHandler) UpdateCrop(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	var crop models.Crop
	if err := h.DB.First(&crop, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Crop not found"})
	}

	if crop.FarmerID != identity.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	var req UpdateCropRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.CropName != nil {
		crop.CropName = *req.CropName
	}
	if req.Quantity != nil {
		crop.Quantity = *req.Quantity
	}
	if req.PricePerUnit != nil {
		crop.PricePerUnit = *req.PricePerUnit
	}
	if req.Description != nil {
		crop.Description = *req.Description
	}
	if req.Status != nil {
		status := models.CropStatus(*req.Status)
		if !status.Valid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid status"})
		}
		crop.Status = status
	}

	if err := h.DB.Save(&crop).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update listing"})
	}

	return c.JSON(fiber.Map{"message": "Crop updated successfully"})
}

// DeleteCrop - DELETE /api/crops/:id
func (h *CropHandler) DeleteCrop(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	id, _ := strconv.Atoi(c.Params("id"))
	var crop models.Crop
	if err := h.DB.First(&crop, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Crop not found"})
	}

	if crop.FarmerID != identity.UserID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Not authorized"})
	}

	if err := h.DB.Delete(&crop).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete listing"})
	}

	return c.JSON(fiber.Map{"message": "Crop deleted successfully"})
}
