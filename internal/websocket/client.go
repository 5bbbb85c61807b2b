package websocket

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10

	// The channel is push-only; anything larger than a close frame is noise
	maxInboundSize = 512

	// Events queued for a slow client before it is dropped
	outboxSize = 64
)

// Client is one browser tab subscribed to a user's ledger events
type Client struct {
	id     string
	userID uuid.UUID
	conn   *websocket.Conn
	hub    *Hub

	mu     sync.RWMutex
	outbox chan []byte
	done   bool
	once   sync.Once
}

// NewClient wraps an upgraded connection for userID
func NewClient(conn *websocket.Conn, userID uuid.UUID, hub *Hub) *Client {
	return &Client{
		id:     uuid.NewString(),
		userID: userID,
		conn:   conn,
		hub:    hub,
		outbox: make(chan []byte, outboxSize),
	}
}

func (c *Client) ID() string        { return c.id }
func (c *Client) UserID() uuid.UUID { return c.userID }

// Send queues an encoded event. A client whose queue is full is closed so the
// frontend reconnects and refetches instead of silently missing updates.
func (c *Client) Send(data []byte) error {
	c.mu.RLock()
	if c.done {
		c.mu.RUnlock()
		return ErrClientClosed
	}
	select {
	case c.outbox <- data:
		c.mu.RUnlock()
		return nil
	default:
		c.mu.RUnlock()
		log.Warn().Str("client_id", c.id).Str("user_id", c.userID.String()).Msg("WebSocket client too slow, dropping")
		c.Close()
		return ErrClientClosed
	}
}

// Close stops the client; it is idempotent
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		c.mu.Lock()
		c.done = true
		close(c.outbox)
		c.mu.Unlock()
		err = c.conn.Close()
	})
	return err
}

// Serve runs the client until the peer goes away. The writer runs in its own
// goroutine; the caller's goroutine reads so pongs and close frames are seen.
func (c *Client) Serve() {
	go c.writeLoop()
	c.readLoop()
}

func (c *Client) readLoop() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxInboundSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.NextReader(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug().Err(err).Str("client_id", c.id).Msg("WebSocket closed unexpectedly")
			}
			return
		}
	}
}

func (c *Client) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case msg, ok := <-c.outbox:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Str("client_id", c.id).Msg("WebSocket write failed")
				c.Close()
				return
			}
		case <-ping.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.Close()
				return
			}
		}
	}
}
