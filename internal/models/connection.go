package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Transport identifies how a peer reached the honeypot.
const (
	TransportHTTP      = "http"
	TransportWebSocket = "websocket"
)

// Connection is the identity of one live session. Rows are immutable apart
// from DisconnectedAt, which is set exactly once on teardown.
type Connection struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	SourceIP       string     `json:"source_ip" gorm:"index"`
	UserAgent      string     `json:"user_agent"`
	Transport      string     `json:"transport"` // http, websocket
	ConnectedAt    time.Time  `json:"connected_at"`
	DisconnectedAt *time.Time `json:"disconnected_at"`
}

func (c *Connection) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.ConnectedAt.IsZero() {
		c.ConnectedAt = time.Now()
	}
	return
}
