package websocket

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// writeWait - максимальное время записи сообщения
	writeWait = 10 * time.Second

	// pongWait - максимальное время ожидания pong от клиента
	pongWait = 60 * time.Second

	// pingPeriod - период пингов; должен быть меньше pongWait
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize - максимальный размер входящего сообщения
	maxMessageSize = 512

	// sendBufferSize - буфер исходящих событий клиента
	sendBufferSize = 32
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Кросс-доменные политики применяет CORS-middleware HTTP-слоя
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client - одно WebSocket-подключение подписчика сессии.
// Мьютекс сериализует отправку в канал и его закрытие: без этого
// NotifySession из горутины отсчёта может попасть на закрытый канал.
type Client struct {
	sessionID string
	conn      *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

// ServeWS апгрейдит HTTP-запрос до WebSocket и регистрирует подписчика
// сессии в хабе
func ServeWS(hub *Hub, sessionID string, w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		sessionID: sessionID,
		conn:      conn,
		send:      make(chan []byte, sendBufferSize),
	}

	hub.Register(sessionID, client)

	go client.writePump(hub)
	go client.readPump(hub)
	return nil
}

// writePump перекачивает события из буфера в соединение и шлёт пинги
func (c *Client) writePump(hub *Hub) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		hub.Unregister(c.sessionID, c)
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Хаб закрыл канал
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump вычитывает входящие сообщения ради обработки pong и закрытия.
// Клиент ничего осмысленного не присылает: все действия идут через HTTP.
func (c *Client) readPump(hub *Hub) {
	defer hub.Unregister(c.sessionID, c)

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WSClient] Сессия %s: неожиданное закрытие: %v", c.sessionID, err)
			}
			return
		}
	}
}

// enqueue кладёт событие в буфер клиента. Не блокирует: возвращает false,
// когда клиент уже закрыт или буфер переполнен.
func (c *Client) enqueue(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

// close закрывает соединение и канал отправки ровно один раз
func (c *Client) close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()

	c.conn.Close()
}
