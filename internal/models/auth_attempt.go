package models

import (
	"time"
)

// Credential presentation methods seen in connect envelopes.
const (
	AuthMethodToken     = "token"
	AuthMethodPassword  = "password"
	AuthMethodDevice    = "device"
	AuthMethodTailscale = "tailscale"
	AuthMethodNone      = "none"
)

// AuthAttempt records one credential presentation. Success is always true:
// the honeypot accepts every credential so the peer keeps talking.
type AuthAttempt struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ConnectionID string    `json:"connection_id" gorm:"index"`
	SourceIP     string    `json:"source_ip" gorm:"index"`
	Method       string    `json:"method"` // token, password, device, tailscale, none
	// Fingerprint is a non-cryptographic 32-bit hash used for deduplication
	// during analysis, never for verification.
	Fingerprint      string    `json:"fingerprint"`
	CredentialPrefix string    `json:"credential_prefix"` // first 100 chars, kept for research
	Success          bool      `json:"success"`
	ClientID         string    `json:"client_id"`
	ClientVersion    string    `json:"client_version"`
	Platform         string    `json:"platform"`
	CreatedAt        time.Time `json:"created_at"`
}
