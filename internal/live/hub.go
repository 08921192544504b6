// Package live streams training progress and final metrics over WebSocket so
// a dashboard can watch a long run. It is optional; the pipeline only pushes.
package live

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

// Client is one connected WebSocket client.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected clients and fans broadcast messages out to them.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = true
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Broadcast sends a message to all connected clients. Slow clients are
// skipped rather than blocking the training loop.
func (h *Hub) Broadcast(msg []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			log.Printf("client buffer full, dropping message")
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastEpoch publishes one model's per-epoch training loss.
func (h *Hub) BroadcastEpoch(model string, epoch int, loss float64) {
	msg, err := NewEnvelope(TypeEpoch, EpochPayload{Model: model, Epoch: epoch, Loss: loss})
	if err != nil {
		log.Printf("encoding epoch message: %v", err)
		return
	}
	h.Broadcast(msg)
}

// BroadcastReport publishes one model's held-out metrics. r2 is nil when the
// coefficient of determination is undefined.
func (h *Hub) BroadcastReport(model string, mae, rmse float64, r2 *float64) {
	msg, err := NewEnvelope(TypeReport, ReportPayload{Model: model, MAE: mae, RMSE: rmse, R2: r2})
	if err != nil {
		log.Printf("encoding report message: %v", err)
		return
	}
	h.Broadcast(msg)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}
