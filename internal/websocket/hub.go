package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event - сообщение, доставляемое подписчику сессии
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub маршрутизирует события сессий их WebSocket-подписчикам. У каждой
// сессии не больше одного подписчика: новый вытесняет старого (перезагрузка
// вкладки). Реализует sessionmanager.Notifier.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client // ключ - ID сессии
}

// NewHub создает новый хаб
func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*Client),
	}
}

// Register привязывает клиента к сессии, вытесняя прежнего подписчика
func (h *Hub) Register(sessionID string, client *Client) {
	h.mu.Lock()
	old := h.clients[sessionID]
	h.clients[sessionID] = client
	h.mu.Unlock()

	if old != nil {
		old.close()
		log.Printf("[WSHub] Прежний подписчик сессии %s вытеснен", sessionID)
	}
	log.Printf("[WSHub] Подписчик сессии %s подключён", sessionID)
}

// Unregister отвязывает клиента, если он всё ещё текущий подписчик
func (h *Hub) Unregister(sessionID string, client *Client) {
	h.mu.Lock()
	if h.clients[sessionID] == client {
		delete(h.clients, sessionID)
	}
	h.mu.Unlock()
	client.close()
}

// NotifySession отправляет событие подписчику сессии. Не блокирует:
// при переполненном буфере событие отбрасывается - обратный отсчёт
// важнее догоняющих тиков.
func (h *Hub) NotifySession(sessionID string, eventType string, data interface{}) {
	h.mu.RLock()
	client := h.clients[sessionID]
	h.mu.RUnlock()

	if client == nil {
		return
	}

	payload, err := json.Marshal(Event{Type: eventType, Data: data})
	if err != nil {
		log.Printf("[WSHub] Ошибка сериализации события %s: %v", eventType, err)
		return
	}

	if !client.enqueue(payload) {
		log.Printf("[WSHub] Событие %s для сессии %s отброшено: подписчик закрыт или буфер переполнен", eventType, sessionID)
	}
}

// Shutdown закрывает всех подписчиков
func (h *Hub) Shutdown() {
	h.mu.Lock()
	clients := make([]*Client, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.clients = make(map[string]*Client)
	h.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
}
