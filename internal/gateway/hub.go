package gateway

import (
	"sync"

	"github.com/0xksdata/openclaw-honeypot/internal/metrics"
)

// Hub is the live-connection table. Timers and broadcasts reach connection
// state only through here, so a stopped connection is unreachable as soon as
// it is evicted.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

// NewHub returns an empty connection table.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]*Conn)}
}

// Add registers a connection under its connection ID.
func (h *Hub) Add(c *Conn) {
	h.mu.Lock()
	h.conns[c.ID()] = c
	n := len(h.conns)
	h.mu.Unlock()
	metrics.SetLiveConnections(n)
}

// Remove evicts a connection. Safe to call twice.
func (h *Hub) Remove(id string) {
	h.mu.Lock()
	delete(h.conns, id)
	n := len(h.conns)
	h.mu.Unlock()
	metrics.SetLiveConnections(n)
}

// Get looks up a live connection by ID.
func (h *Hub) Get(id string) *Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.conns[id]
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// AuthenticatedCount returns how many connections have completed the
// handshake.
func (h *Hub) AuthenticatedCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, c := range h.conns {
		if c.State() == StateAuthenticated {
			n++
		}
	}
	return n
}

// Broadcast sends an event to every authenticated connection. A send failure
// on one socket never aborts the sweep.
func (h *Hub) Broadcast(event string, payload interface{}) {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.SendEvent(event, payload)
	}
}

// CloseAll tears down every live connection; used on shutdown.
func (h *Hub) CloseAll() {
	h.mu.RLock()
	targets := make([]*Conn, 0, len(h.conns))
	for _, c := range h.conns {
		targets = append(targets, c)
	}
	h.mu.RUnlock()

	for _, c := range targets {
		c.Close()
	}
}
