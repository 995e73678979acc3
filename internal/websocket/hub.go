package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Hub maintains active WebSocket connections and fans planning changes out to
// every connected console, replacing the Firestore live listeners the admin UI
// used to rely on.
type Hub struct {
	// Registered clients (clientID -> Client)
	clients map[string]*Client

	// Outbound planning updates
	broadcast chan *PlanningUpdate

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client

	// Mutex for thread-safe client map access
	mu sync.RWMutex
}

// PlanningUpdate tells connected consoles that the planning changed.
// Event is one of "mission.created", "mission.updated", "mission.deleted",
// "event.created", "event.deleted".
type PlanningUpdate struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		broadcast:  make(chan *PlanningUpdate, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			log.Printf("✅ [WEBSOCKET] Client connected: %s (%s), %d total", client.UserID, client.UserRole, h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("🔴 [WEBSOCKET] Client disconnected: %s, %d remaining", client.UserID, h.clientCount())

		case update := <-h.broadcast:
			data, err := json.Marshal(update)
			if err != nil {
				log.Printf("❌ Failed to marshal planning update: %v", err)
				continue
			}

			h.mu.Lock()
			for id, client := range h.clients {
				select {
				case client.send <- data:
				default:
					// Client buffer full, disconnect
					close(client.send)
					delete(h.clients, id)
					log.Printf("⚠️ Client buffer full, disconnecting: %s", client.UserID)
				}
			}
			h.mu.Unlock()
		}
	}
}

// BroadcastPlanningUpdate queues an update for all connected consoles
func (h *Hub) BroadcastPlanningUpdate(event string, payload interface{}) {
	h.broadcast <- &PlanningUpdate{Event: event, Payload: payload}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
