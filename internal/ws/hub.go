package ws

import (
	"encoding/json"
	"log"
)

// Hub maintains the set of connected market-feed clients and fans events
// out to them. The feed is one-way: clients only listen.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Outbound events for all clients.
	Broadcast chan []byte
}

// Event is one market-feed frame: a new listing or an appended price.
type Event struct {
	Type    string      `json:"type"` // 'crop_listed', 'price_added'
	Payload interface{} `json:"payload"`
}

func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Printf("Market feed client connected (%d total)", len(h.clients))
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
			}
		case message := <-h.Broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish serializes an event and hands it to the broadcast loop without
// blocking the HTTP handler that produced it.
func (h *Hub) Publish(eventType string, payload interface{}) {
	data, err := json.Marshal(Event{Type: eventType, Payload: payload})
	if err != nil {
		log.Printf("Failed to marshal market event: %v", err)
		return
	}
	go func() {
		h.Broadcast <- data
	}()
}
