package handlers

import (
	"kisanmandi_backend/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// FeedHandler exposes the market event feed over websocket.
type FeedHandler struct {
	Hub *ws.Hub
}

func NewFeedHandler(hub *ws.Hub) *FeedHandler {
	return &FeedHandler{Hub: hub}
}

// UpgradeMiddleware ensures the client is trying to upgrade to WebSocket
func (h *FeedHandler) UpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket handler function
func (h *FeedHandler) Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &ws.Client{
			Hub:  h.Hub,
			Conn: conn,
			Send: make(chan []byte, 256),
		}

		h.Hub.Register <- client

		go client.WritePump()
		client.ReadPump()
	})
}
