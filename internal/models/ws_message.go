package models

import (
	"time"
)

// Frame directions and kinds as persisted on WSMessage rows.
const (
	DirectionInbound  = "inbound"
	DirectionOutbound = "outbound"

	FrameConnect  = "connect"
	FrameRequest  = "request"
	FrameResponse = "response"
	FrameEvent    = "event"
	FrameInvalid  = "invalid"
)

// WSMessage records one framed message crossing a gateway socket.
type WSMessage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ConnectionID  string    `json:"connection_id" gorm:"index"`
	Direction     string    `json:"direction"` // inbound, outbound
	Kind          string    `json:"kind"`      // connect, request, response, event, invalid
	Method        string    `json:"method"`
	CorrelationID string    `json:"correlation_id"`
	Payload       string    `json:"payload" gorm:"type:text"`
	Raw           string    `json:"raw" gorm:"type:text"`
	PayloadSize   int       `json:"payload_size"`
	Suspicious    bool      `json:"suspicious"`
	Reasons       string    `json:"reasons" gorm:"type:text"`
	CreatedAt     time.Time `json:"created_at"`
}
