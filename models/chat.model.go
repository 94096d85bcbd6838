package models

import (
	"time"
)

// ChatMessage is one advisor exchange. Append-only audit log; every chat
// request is recorded regardless of which path produced the reply.
type ChatMessage struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"index;not null" json:"user_id"`

	UserMessage string `gorm:"type:text;not null" json:"user_message"`
	BotResponse string `gorm:"type:text;not null" json:"bot_response"`
	MessageType string `gorm:"size:50" json:"message_type"` // agronomy, marketplace, general

	CreatedAt time.Time `json:"created_at"`
}
