package realtime

import (
	"log"
	"sync"
)

type Client struct {
	ID           string
	BarbershopID uint
	Send         chan []byte
}

// Hub entrega eventos às sessões abertas de cada barbearia.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
}

func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	close(client.Send)
}

// Broadcast nunca bloqueia: cliente com fila cheia perde a mensagem.
func (h *Hub) Broadcast(barbershopID uint, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if client.BarbershopID != barbershopID {
			continue
		}
		select {
		case client.Send <- payload:
		default:
			log.Printf("realtime: drop message for client %s", client.ID)
		}
	}
}

func (h *Hub) Count(barbershopID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, client := range h.clients {
		if client.BarbershopID == barbershopID {
			n++
		}
	}
	return n
}
