package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Stock event actions pushed to connected dashboards.
const (
	ActionProductCreated = "product_created"
	ActionStockAdjusted  = "stock_adjusted"
	ActionProductSold    = "product_sold"
)

// StockEvent is the JSON envelope broadcast after every successful stock
// mutation. EventID is filled in by the hub so clients can deduplicate.
type StockEvent struct {
	EventID string `json:"event_id"`
	Action  string `json:"action"`
	Code    string `json:"code"`
	Name    string `json:"name"`
	Stock   int    `json:"stock"`
	Message string `json:"message,omitempty"`
}

// Hub fans stock events out to all connected websocket clients.
type Hub struct {
	Register   chan *websocket.Conn
	Unregister chan *websocket.Conn
	Broadcast  chan []byte

	clients map[*websocket.Conn]bool
	mu      sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		Register:   make(chan *websocket.Conn),
		Unregister: make(chan *websocket.Conn),
		Broadcast:  make(chan []byte, 16),
		clients:    make(map[*websocket.Conn]bool),
	}
}

// BroadcastStockEvent tags the event with a fresh id, marshals it and
// queues it for delivery.
func (h *Hub) BroadcastStockEvent(ev StockEvent) {
	ev.EventID = uuid.NewString()
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Println("ws: marshal stock event:", err)
		return
	}
	h.Broadcast <- msg
}

func (h *Hub) Run() {
	for {
		select {
		case conn := <-h.Register:
			h.mu.Lock()
			h.clients[conn] = true
			h.mu.Unlock()
			log.Println("ws: client connected")

		case conn := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[conn]; ok {
				delete(h.clients, conn)
				conn.Close()
			}
			h.mu.Unlock()

		case message := <-h.Broadcast:
			h.mu.Lock()
			for conn := range h.clients {
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					conn.Close()
					delete(h.clients, conn)
				}
			}
			h.mu.Unlock()
		}
	}
}
