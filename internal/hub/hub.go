package hub

import (
	"encoding/json"
	"sync"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single client connection (a user in a chat).
// It's essentially a channel that the SSE handler will listen to.
type Client chan []byte

// Hub manages all active chats and their connected clients.
type Hub struct {
	chats map[uint]map[Client]bool
	mu    sync.RWMutex
}

// GlobalHub is the singleton instance of our Hub.
var GlobalHub = NewHub()

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		chats: make(map[uint]map[Client]bool),
	}
}

// Subscribe adds a new client to a specific chat.
func (h *Hub) Subscribe(chatID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.chats[chatID]; !ok {
		h.chats[chatID] = make(map[Client]bool)
	}
	h.chats[chatID][client] = true
}

// Unsubscribe removes a client from a chat.
func (h *Hub) Unsubscribe(chatID uint, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.chats[chatID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client) // Close the channel to signal the SSE handler to stop.
			if len(clients) == 0 {
				delete(h.chats, chatID)
			}
		}
	}
}

// Broadcast sends an event to all clients in a specific chat.
func (h *Hub) Broadcast(chatID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if clients, ok := h.chats[chatID]; ok {
		messageBytes, err := json.Marshal(event)
		if err != nil {
			return
		}

		for client := range clients {
			// Use a non-blocking send to prevent a slow client from blocking the hub.
			select {
			case client <- messageBytes:
			default:
				// Client channel is full, maybe they are disconnected or slow.
				// The unsubscribe logic will handle cleaning this up eventually.
			}
		}
	}
}
