package models

import (
	"time"
)

// Request records one completed HTTP exchange against the deception surface.
type Request struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ConnectionID string    `json:"connection_id" gorm:"index"`
	Method       string    `json:"method"`
	Path         string    `json:"path"`
	Query        string    `json:"query"`
	Headers      string    `json:"headers" gorm:"type:text"`
	Body         string    `json:"body" gorm:"type:text"`
	BodySize     int       `json:"body_size"` // true length before truncation
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `json:"response_body" gorm:"type:text"`
	DurationMs   int64     `json:"duration_ms"`
	Suspicious   bool      `json:"suspicious"`
	Reasons      string    `json:"reasons" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
