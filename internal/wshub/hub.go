// Package wshub broadcasts job lifecycle events (queued, running, ready,
// failed) to connected websocket clients, grounded on the realtime
// collaboration service's connection/broadcast pattern but collapsed to a
// single broadcast room: there are no per-document sessions here, just one
// feed of queue activity every connected operator dashboard watches.
package wshub

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// EventType labels a job lifecycle event.
type EventType string

const (
	EventQueued  EventType = "queued"
	EventRunning EventType = "running"
	EventReady   EventType = "ready"
	EventFailed  EventType = "failed"
)

// Event is one job lifecycle notification broadcast to every client.
type Event struct {
	Type      EventType `json:"type"`
	OrderID   int64     `json:"order_id"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub tracks connected clients and fans out events to all of them.
type Hub struct {
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*websocket.Conn]chan Event
}

// NewHub constructs an empty Hub. Origin checking is left permissive here
// since this feed carries no sensitive data and authentication is out of
// scope; a production deployment in front of a real origin would tighten
// CheckOrigin.
func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]chan Event),
	}
}

// ServeHTTP upgrades the connection and streams events to it until the
// client disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	feed := make(chan Event, 16)
	h.mu.Lock()
	h.clients[conn] = feed
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		// Broadcast may already have dropped this client and closed feed.
		if _, ok := h.clients[conn]; ok {
			delete(h.clients, conn)
			close(feed)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Drain incoming frames so control frames are processed; a read error
	// (e.g. the client disconnecting) closes the connection, and the next
	// write then fails and ends this stream. This feed is one-directional,
	// so anything received is simply discarded.
	go func() {
		for {
			if _, _, err := conn.NextReader(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for event := range feed {
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}

// Broadcast sends event to every currently connected client. Slow or dead
// clients are dropped rather than allowed to block the whole feed. Callers
// are not required to set Timestamp; it defaults to now.
func (h *Hub) Broadcast(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn, feed := range h.clients {
		select {
		case feed <- event:
		default:
			delete(h.clients, conn)
			close(feed)
			conn.Close()
		}
	}
}
