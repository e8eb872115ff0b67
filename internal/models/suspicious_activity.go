package models

import (
	"time"
)

// SuspiciousActivity records one classifier hit. The category, severity and
// matched pattern are a snapshot of the classifier at ingest time.
type SuspiciousActivity struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Category     string    `json:"category"` // sql_injection, command_injection, xss, path_traversal, prompt_injection, scan, exploit
	Severity     string    `json:"severity"` // low, medium, high, critical
	Description  string    `json:"description"`
	Payload      string    `json:"payload" gorm:"type:text"`
	Pattern      string    `json:"pattern"` // source of the first pattern that matched
	SourceIP     string    `json:"source_ip" gorm:"index"`
	UserAgent    string    `json:"user_agent"`
	Path         string    `json:"path"`
	Method       string    `json:"method"`
	ConnectionID string    `json:"connection_id"`
	CreatedAt    time.Time `json:"created_at"`
}
