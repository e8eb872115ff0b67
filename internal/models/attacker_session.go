package models

import (
	"time"
)

// AttackerSession is the per-source-IP aggregate. Counters only grow, and the
// boolean tags are sticky: once set they never revert.
type AttackerSession struct {
	IP               string    `json:"ip" gorm:"primaryKey"`
	FirstSeen        time.Time `json:"first_seen"`
	LastSeen         time.Time `json:"last_seen"`
	RequestCount     int64     `json:"request_count"`
	WSMessageCount   int64     `json:"ws_message_count"`
	AuthAttemptCount int64     `json:"auth_attempt_count"`
	SuspiciousCount  int64     `json:"suspicious_count"`
	IsScanner        bool      `json:"is_scanner"`
	IsBruteforcer    bool      `json:"is_bruteforcer"`
	IsExploiter      bool      `json:"is_exploiter"`
}
