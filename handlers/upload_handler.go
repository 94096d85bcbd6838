package handlers

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler handles crop image uploads
type UploadHandler struct {
	// Dir is the storage directory for listing photos, created on
	// first use. Files are served back under /uploads/crops/.
	Dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{Dir: dir}
}

// UploadImage - POST /api/upload
// Saves a listing photo and returns its public URL.
func (h *UploadHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Image file is required",
		})
	}

	ext := filepath.Ext(file.Filename)
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only .jpg, .jpeg, and .png files are allowed",
		})
	}

	if err := os.MkdirAll(h.Dir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save file",
		})
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)

	if err := c.SaveFile(file, filepath.Join(h.Dir, filename)); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Could not save file",
		})
	}

	return c.JSON(fiber.Map{
		"url": fmt.Sprintf("/uploads/crops/%s", filename),
	})
}
