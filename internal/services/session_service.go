package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

// Delta is one batch of counter increments and flag raises for an IP.
type Delta struct {
	Requests     int64
	WSMessages   int64
	AuthAttempts int64
	Suspicious   int64

	IsScanner     bool
	IsBruteforcer bool
	IsExploiter   bool
}

// Sessions maintains the per-source-IP attacker aggregates.
type Sessions struct {
	db *gorm.DB
}

// NewSessions returns a Sessions aggregator using the provided DB.
func NewSessions(db *gorm.DB) *Sessions {
	return &Sessions{db: db}
}

// Touch creates the aggregate on first contact and otherwise increments the
// listed counters, refreshes last-seen and raises flags. Flags are sticky:
// a true in the row is never overwritten with false. Errors are logged and
// swallowed like every other persistence failure.
func (s *Sessions) Touch(ip string, d Delta) {
	if ip == "" {
		return
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var session models.AttackerSession
		if err := tx.Where("ip = ?", ip).First(&session).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			now := time.Now()
			session = models.AttackerSession{
				IP:               ip,
				FirstSeen:        now,
				LastSeen:         now,
				RequestCount:     d.Requests,
				WSMessageCount:   d.WSMessages,
				AuthAttemptCount: d.AuthAttempts,
				SuspiciousCount:  d.Suspicious,
				IsScanner:        d.IsScanner,
				IsBruteforcer:    d.IsBruteforcer,
				IsExploiter:      d.IsExploiter,
			}
			return tx.Create(&session).Error
		}

		updates := map[string]interface{}{
			"last_seen": time.Now(),
		}
		if d.Requests != 0 {
			updates["request_count"] = gorm.Expr("request_count + ?", d.Requests)
		}
		if d.WSMessages != 0 {
			updates["ws_message_count"] = gorm.Expr("ws_message_count + ?", d.WSMessages)
		}
		if d.AuthAttempts != 0 {
			updates["auth_attempt_count"] = gorm.Expr("auth_attempt_count + ?", d.AuthAttempts)
		}
		if d.Suspicious != 0 {
			updates["suspicious_count"] = gorm.Expr("suspicious_count + ?", d.Suspicious)
		}
		if d.IsScanner {
			updates["is_scanner"] = true
		}
		if d.IsBruteforcer {
			updates["is_bruteforcer"] = true
		}
		if d.IsExploiter {
			updates["is_exploiter"] = true
		}

		return tx.Model(&models.AttackerSession{}).Where("ip = ?", ip).Updates(updates).Error
	})
	if err != nil {
		logger.Log().WithError(err).WithField("ip", ip).Error("touch attacker session")
	}
}

// Get returns the aggregate for an IP, or nil when the IP was never seen.
func (s *Sessions) Get(ip string) *models.AttackerSession {
	var session models.AttackerSession
	if err := s.db.Where("ip = ?", ip).First(&session).Error; err != nil {
		return nil
	}
	return &session
}
