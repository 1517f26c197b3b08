package realtime

import (
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Client represents a single connected websocket client subscribed to one
// channel (a battle room or a classroom chat).
type Client struct {
	UserID   uint
	Username string
	Conn     *websocket.Conn
	Send     chan []byte // buffered outbound message channel
	Channel  string      // e.g. "battle:AB12CD" or "classroom:7"
	closed   bool
	mu       sync.Mutex
}

// NewClient wraps an upgraded websocket connection
func NewClient(userID uint, username, channel string, conn *websocket.Conn) *Client {
	return &Client{
		UserID:   userID,
		Username: username,
		Conn:     conn,
		Send:     make(chan []byte, 64),
		Channel:  channel,
	}
}

// SafeSend queues a message without blocking the hub loop. Returns false if
// the client is already closed or its buffer is full.
func (c *Client) SafeSend(message []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	select {
	case c.Send <- message:
		return true
	default:
		return false // channel full, drop rather than stall the hub
	}
}

// SafeClose closes the send channel exactly once
func (c *Client) SafeClose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.Send)
		c.closed = true
	}
}

// WritePump drains Send onto the websocket until the channel closes.
// Runs on the connection's handler goroutine.
func (c *Client) WritePump() {
	for message := range c.Send {
		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
}
