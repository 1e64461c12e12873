package ws

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/rit1708/Digital-menu/internal/logger"
)

// Hub управляет WebSocket клиентами, сгруппированными по ресторанам.
// Открытые страницы публичного меню подписываются на ресторан и получают
// событие menu.updated при любом изменении его меню.
type Hub struct {
	mu         sync.RWMutex
	rooms      map[uuid.UUID]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
}

type message struct {
	restaurantID uuid.UUID
	payload      []byte
}

// NewHub создаёт новый хаб.
func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[uuid.UUID]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 32),
	}
}

// Run запускает главный цикл хаба.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.addClient(client)
		case client := <-h.unregister:
			h.removeClient(client)
		case msg := <-h.broadcast:
			h.send(msg.restaurantID, msg.payload)
		}
	}
}

// Register добавляет клиента.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister удаляет клиента.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// MenuUpdated рассылает событие menu.updated подписчикам ресторана.
// Сообщение не несёт само меню: клиент перезапрашивает его по HTTP.
func (h *Hub) MenuUpdated(restaurantID uuid.UUID) {
	payload, err := json.Marshal(map[string]any{
		"type": "menu.updated",
		"data": map[string]any{"restaurant_id": restaurantID},
	})
	if err != nil {
		if logger.Log != nil {
			logger.Log.WithError(err).Error("ws: не удалось сериализовать сообщение")
		}
		return
	}

	h.broadcast <- message{restaurantID: restaurantID, payload: payload}
}

func (h *Hub) addClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.rooms[client.restaurantID]; !ok {
		h.rooms[client.restaurantID] = make(map[*Client]struct{})
	}
	h.rooms[client.restaurantID][client] = struct{}{}
}

func (h *Hub) removeClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[client.restaurantID]
	if !ok {
		return
	}
	if _, ok := room[client]; !ok {
		return
	}

	delete(room, client)
	close(client.send)
	if len(room) == 0 {
		delete(h.rooms, client.restaurantID)
	}
}

func (h *Hub) send(restaurantID uuid.UUID, payload []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.rooms[restaurantID] {
		select {
		case client.send <- payload:
		default:
			// Медленный клиент: пропускаем, следующее событие его догонит.
		}
	}
}
