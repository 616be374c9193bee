package ws

import (
	"mediaplanner/internal/platform/logger"
	"sync"
)

// MessageType defines the type of WebSocket message
type MessageType string

const (
	MsgStep   MessageType = "step"
	MsgResult MessageType = "result"
	MsgError  MessageType = "error"
)

// Hub tracks open wizard connections so they can be closed on shutdown
type Hub struct {
	conns map[*Connection]struct{}
	mu    sync.RWMutex
	log   *logger.Logger

	register   chan *Connection
	unregister chan *Connection
	closeAll   chan chan struct{}
}

// Connection is one wizard client
type Connection struct {
	ProgressID string
	Send       chan []byte

	mu     sync.Mutex
	closed bool
}

// trySend queues data without blocking. It reports false once the
// connection is closed or its buffer is full.
func (c *Connection) trySend(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- data:
		return true
	default:
		return false
	}
}

func (c *Connection) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// NewHub creates a new WebSocket hub
func NewHub(log *logger.Logger) *Hub {
	h := &Hub{
		conns:      make(map[*Connection]struct{}),
		log:        log,
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		closeAll:   make(chan chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.mu.Lock()
			h.conns[conn] = struct{}{}
			h.mu.Unlock()
			h.log.Debug("wizard connected", "progressId", conn.ProgressID)

		case conn := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.conns[conn]; ok {
				delete(h.conns, conn)
				conn.close()
				h.log.Debug("wizard disconnected", "progressId", conn.ProgressID)
			}
			h.mu.Unlock()

		case done := <-h.closeAll:
			h.mu.Lock()
			for conn := range h.conns {
				delete(h.conns, conn)
				conn.close()
			}
			h.mu.Unlock()
			close(done)
		}
	}
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	h.register <- conn
}

// Unregister removes a connection and closes its send channel
func (h *Hub) Unregister(conn *Connection) {
	h.unregister <- conn
}

// CloseAll closes every open connection
func (h *Hub) CloseAll() {
	done := make(chan struct{})
	h.closeAll <- done
	<-done
}

// Count returns the number of open connections
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}
