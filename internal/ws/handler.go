package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/golfcard/internal/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 8192,
	CheckOrigin: func(r *http.Request) bool {
		return true // origins are checked by middleware.WebSocketCORSCheck
	},
}

// Client is the socket attached to one session.
type Client struct {
	conn    *websocket.Conn
	token   string
	session *session.Session
	send    chan []byte
}

// Hub tracks the single live socket of every session. A new socket for the
// same session replaces the old one.
type Hub struct {
	clients    map[string]*Client // session token -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Message types
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type PointerData struct {
	Phase string  `json:"phase"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

type ResizeData struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ratio  float64 `json:"ratio"`
}

// Run serves register and unregister requests until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case client := <-h.register:
			h.mu.Lock()
			if old, exists := h.clients[client.token]; exists {
				log.Printf("[WS] Session %s reconnecting - closing old connection", client.token)
				if err := old.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new connection"), time.Now().Add(5*time.Second)); err != nil {
					log.Printf("[WS] Error writing close control to old client %s: %v", old.token, err)
				}
				old.conn.Close()
				close(old.send)
			}
			h.clients[client.token] = client
			h.mu.Unlock()
			log.Printf("[WS] Client connected to session %s", client.token)

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.token]; ok && cur == client {
				delete(h.clients, client.token)
				close(client.send)
				log.Printf("[WS] Client disconnected from session %s", client.token)
			}
			h.mu.Unlock()
		}
	}
}

func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendToSession sends a message to the socket attached to a session.
func (h *Hub) SendToSession(token string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	client, exists := h.clients[token]
	if !exists {
		return
	}
	select {
	case client.send <- data:
	default:
		log.Printf("[WS] SendToSession dropped message for session %s (buffer full)", token)
	}
}

// Handler upgrades GET /sessions/:token/ws and attaches the socket.
func Handler(hub *Hub, sessions *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		s, err := sessions.Get(token)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := &Client{
			conn:    conn,
			token:   token,
			session: s,
			send:    make(chan []byte, 16),
		}
		hub.register <- client

		go client.writePump()
		go client.readPump(hub)
	}
}

// writePump owns the connection's writer: hub messages, session events and
// keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	events := c.session.Events()
	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] write error for session %s: %v", c.token, err)
				return
			}

		case ev := <-events:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Printf("[WS] write error for session %s: %v", c.token, err)
				return
			}

		case <-c.session.Done():
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"))
			return

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] ping error for session %s: %v", c.token, err)
				return
			}
		}
	}
}

func (c *Client) readPump(hub *Hub) {
	defer func() {
		hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[WS] unexpected close for session %s: %v", c.token, err)
			}
			return
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			hub.SendToSession(c.token, errorMessage("Invalid message"))
			continue
		}
		in, err := decodeInput(msg)
		if err != nil {
			hub.SendToSession(c.token, errorMessage(err.Error()))
			continue
		}
		if err := c.session.Send(in); err != nil {
			hub.SendToSession(c.token, errorMessage(err.Error()))
		}
	}
}

func errorMessage(message string) map[string]interface{} {
	return map[string]interface{}{
		"type":    "error",
		"message": message,
	}
}
