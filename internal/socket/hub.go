package socket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Event is one workflow notification pushed to connected clients, e.g. an
// order approval or a damage claim comment.
type Event struct {
	Type      string      `json:"type"`
	EntityID  string      `json:"entityId"`
	Status    string      `json:"status"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Hub tracks all connected WebSocket clients, keyed by user id.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client connection to the hub.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	log.Printf("WebSocket client registered: %s", userID)
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %s", userID)
	}
}

// Notify sends an event to one user. An offline user is not an error; the
// mobile client catches up by polling.
func (h *Hub) Notify(userID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[userID]
	if !ok {
		return
	}

	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("WebSocket marshal failed: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
		log.Printf("WebSocket send to %s failed: %v", userID, err)
	}
}
