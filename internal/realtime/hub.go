package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub maintains active connections per project group and fans refresh
// events out to them. Events only tell clients to re-query; they carry no
// authoritative state.
type Hub struct {
	mu               sync.RWMutex
	groupIDToClients map[string]map[Client]struct{}
}

var hubInstance *Hub
var once sync.Once

// GetHub returns a singleton hub instance.
func GetHub() *Hub {
	once.Do(func() {
		hubInstance = &Hub{
			groupIDToClients: make(map[string]map[Client]struct{}),
		}
	})
	return hubInstance
}

// Register adds a client under a group ID.
func (h *Hub) Register(groupID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.groupIDToClients[groupID]; !ok {
		h.groupIDToClients[groupID] = make(map[Client]struct{})
	}
	h.groupIDToClients[groupID][client] = struct{}{}
}

// Unregister removes a client; if the group has no more clients, cleans up the map.
func (h *Hub) Unregister(groupID string, client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clients, ok := h.groupIDToClients[groupID]; ok {
		delete(clients, client)
		if len(clients) == 0 {
			delete(h.groupIDToClients, groupID)
		}
	}
}

// Broadcast sends a message to all clients of a group.
func (h *Hub) Broadcast(groupID string, message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	clients := h.groupIDToClients[groupID]
	for c := range clients {
		if ok := c.Send(message); !ok {
			// client write failed; let the handler clean it up on its side
		}
	}
}
