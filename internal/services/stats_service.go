package services

import (
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

// Stats logs a periodic capture summary so operators see a heartbeat without
// querying the store.
type Stats struct {
	db   *gorm.DB
	cron *cron.Cron
}

// NewStats returns a Stats job runner.
func NewStats(db *gorm.DB) *Stats {
	return &Stats{db: db, cron: cron.New()}
}

// Start schedules the hourly summary. Call Stop on shutdown.
func (s *Stats) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.logSummary); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler.
func (s *Stats) Stop() {
	s.cron.Stop()
}

func (s *Stats) logSummary() {
	var connections, suspicious, sessions int64
	s.db.Model(&models.Connection{}).Count(&connections)
	s.db.Model(&models.SuspiciousActivity{}).Count(&suspicious)
	s.db.Model(&models.AttackerSession{}).Count(&sessions)

	var top []models.AttackerSession
	s.db.Order("suspicious_count desc").Limit(5).Find(&top)

	entry := logger.WithFields(map[string]interface{}{
		"connections": connections,
		"suspicious":  suspicious,
		"attackers":   sessions,
	})
	for _, t := range top {
		if t.SuspiciousCount > 0 {
			entry = entry.WithField("top_"+t.IP, t.SuspiciousCount)
		}
	}
	entry.Info("capture summary")
}
