// Package realtime pushes dashboard events to connected subscribers over
// WebSockets. Delivery is fire-and-forget: there is no acknowledgment and no
// replay of events missed while disconnected.
package realtime

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

// Notifier publishes named events to dashboard subscribers.
type Notifier interface {
	// Broadcast sends the event to every connected subscriber.
	Broadcast(event string, payload any)
	// Emit sends the event only to subscribers joined to the session's group.
	Emit(sessionID string, event string, payload any)
}

// Event is the wire frame pushed to subscribers.
type Event struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

const writeTimeout = 5 * time.Second

// Client is one connected subscriber. A client with a session ID belongs to
// that session's group and additionally receives all broadcast events.
type Client struct {
	conn      *websocket.Conn
	sessionID string
	send      chan []byte
	done      chan struct{}
}

// Hub tracks connected subscribers and fans events out to them.
type Hub struct {
	logger *zap.Logger

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

// NewHub returns an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*Client]struct{}),
	}
}

// Register adds a connection to the hub and starts its writer. sessionID may
// be empty for staff dashboard subscribers, which receive broadcasts only.
func (h *Hub) Register(conn *websocket.Conn, sessionID string) *Client {
	c := &Client{
		conn:      conn,
		sessionID: sessionID,
		send:      make(chan []byte, 16),
		done:      make(chan struct{}),
	}
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go c.writeLoop(h.logger)

	h.logger.Info("realtime subscriber registered", zap.String("sessionId", sessionID))
	return c
}

// Unregister removes the client and stops its writer.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.done)
	}
	h.mu.Unlock()
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends the event to every subscriber.
func (h *Hub) Broadcast(event string, payload any) {
	h.push("", event, payload)
}

// Emit sends the event only to the session's subscriber group.
func (h *Hub) Emit(sessionID string, event string, payload any) {
	h.push(sessionID, event, payload)
}

func (h *Hub) push(sessionID, event string, payload any) {
	b, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		h.logger.Error("failed to encode realtime event", zap.String("event", event), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if sessionID != "" && c.sessionID != sessionID {
			continue
		}
		select {
		case c.send <- b:
		default:
			// Slow subscriber; drop rather than block the publisher.
			h.logger.Debug("dropping realtime event for slow subscriber", zap.String("event", event))
		}
	}
}

func (c *Client) writeLoop(logger *zap.Logger) {
	for {
		select {
		case msg := <-c.send:
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err := c.conn.Write(ctx, websocket.MessageText, msg)
			cancel()
			if err != nil {
				logger.Debug("realtime write failed", zap.Error(err))
				return
			}
		case <-c.done:
			return
		}
	}
}
