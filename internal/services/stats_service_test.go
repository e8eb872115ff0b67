package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

func TestStats_StartStop(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Connection{}, &models.SuspiciousActivity{}, &models.AttackerSession{}))

	stats := NewStats(db)
	assert.NoError(t, stats.Start())
	stats.Stop()
}

func TestStats_SummaryRuns(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)
	assert.NoError(t, db.AutoMigrate(&models.Connection{}, &models.SuspiciousActivity{}, &models.AttackerSession{}))

	db.Create(&models.AttackerSession{IP: "198.51.100.4", SuspiciousCount: 3})

	// Must not panic with populated or empty tables.
	stats := NewStats(db)
	stats.logSummary()
}
