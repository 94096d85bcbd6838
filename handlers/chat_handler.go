package handlers

import (
	"errors"
	"log"

	"kisanmandi_backend/internal/advisor"
	"kisanmandi_backend/models"
	"kisanmandi_backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ChatHandler struct {
	DB     *gorm.DB
	Engine *advisor.Engine
}

func NewChatHandler(db *gorm.DB, engine *advisor.Engine) *ChatHandler {
	return &ChatHandler{DB: db, Engine: engine}
}

// ChatRequest defines the payload for the advisor endpoint
type ChatRequest struct {
	Message string `json:"message"`
	Type    string `json:"type"` // agronomy, marketplace, general
}

// Chat - POST /api/chat
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Message is required"})
	}

	category := advisor.ParseCategory(req.Type)
	reply, answerErr := h.Engine.Answer(c.UserContext(), req.Message, category)

	// Every exchange lands in the audit log, the credential-error path
	// included.
	record := models.ChatMessage{
		UserID:      identity.UserID,
		UserMessage: req.Message,
		BotResponse: reply,
		MessageType: string(category),
	}
	if err := h.DB.Create(&record).Error; err != nil {
		log.Printf("Failed to store chat message: %v", err)
	}

	if errors.Is(answerErr, advisor.ErrInvalidAPIKey) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"user_message": req.Message,
			"bot_response": reply,
			"error":        true,
		})
	}

	return c.JSON(fiber.Map{
		"user_message": req.Message,
		"bot_response": reply,
	})
}

// GetHistory - GET /api/chat/history
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	identity, err := utils.IdentityFromCtx(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user session"})
	}

	var messages []models.ChatMessage
	if err := h.DB.Where("user_id = ?", identity.UserID).
		Order("created_at desc").Limit(50).Find(&messages).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch chat history"})
	}

	return c.JSON(fiber.Map{"data": messages})
}
