package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

func setupRecorderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	assert.NoError(t, err)

	err = db.AutoMigrate(
		&models.Connection{},
		&models.Request{},
		&models.WSMessage{},
		&models.AuthAttempt{},
		&models.ChannelInteraction{},
		&models.SuspiciousActivity{},
	)
	assert.NoError(t, err)

	return db
}

func TestRecorder_ConnectionLifecycle(t *testing.T) {
	db := setupRecorderTestDB(t)
	rec := NewRecorder(db)

	conn := rec.RecordConnection("203.0.113.9", "curl/8.0", models.TransportHTTP)
	assert.NotEmpty(t, conn.ID)

	var stored models.Connection
	assert.NoError(t, db.First(&stored, "id = ?", conn.ID).Error)
	assert.Equal(t, "203.0.113.9", stored.SourceIP)
	assert.Nil(t, stored.DisconnectedAt)

	rec.CloseConnection(conn.ID)
	assert.NoError(t, db.First(&stored, "id = ?", conn.ID).Error)
	assert.NotNil(t, stored.DisconnectedAt)

	// Closing again must not move the timestamp.
	closedAt := *stored.DisconnectedAt
	rec.CloseConnection(conn.ID)
	assert.NoError(t, db.First(&stored, "id = ?", conn.ID).Error)
	assert.WithinDuration(t, closedAt, *stored.DisconnectedAt, time.Millisecond)
}

func TestRecorder_RequestBodyTruncation(t *testing.T) {
	db := setupRecorderTestDB(t)
	rec := NewRecorder(db)
	conn := rec.RecordConnection("203.0.113.9", "", models.TransportHTTP)

	exact := strings.Repeat("a", RequestBodyLimit)
	rec.RecordRequest(&models.Request{ConnectionID: conn.ID, Method: "POST", Path: "/x", Body: exact, BodySize: len(exact)})

	over := strings.Repeat("b", RequestBodyLimit+1)
	rec.RecordRequest(&models.Request{ConnectionID: conn.ID, Method: "POST", Path: "/y", Body: over, BodySize: len(over)})

	var rows []models.Request
	assert.NoError(t, db.Order("id").Find(&rows).Error)
	assert.Len(t, rows, 2)

	assert.Len(t, rows[0].Body, RequestBodyLimit)
	assert.Equal(t, RequestBodyLimit, rows[0].BodySize)

	assert.Len(t, rows[1].Body, RequestBodyLimit)
	assert.Equal(t, RequestBodyLimit+1, rows[1].BodySize)
}

func TestRecorder_SuspiciousPayloadTruncation(t *testing.T) {
	db := setupRecorderTestDB(t)
	rec := NewRecorder(db)

	rec.RecordSuspicious(&models.SuspiciousActivity{
		Category: "sql_injection",
		Severity: "high",
		Payload:  strings.Repeat("x", SuspiciousPayloadLimit+500),
		SourceIP: "203.0.113.9",
	})

	var row models.SuspiciousActivity
	assert.NoError(t, db.First(&row).Error)
	assert.Len(t, row.Payload, SuspiciousPayloadLimit)
}

func TestRecorder_AuthAttempt(t *testing.T) {
	db := setupRecorderTestDB(t)
	rec := NewRecorder(db)
	conn := rec.RecordConnection("203.0.113.9", "", models.TransportWebSocket)

	long := strings.Repeat("s", 150)
	rec.RecordAuthAttempt(&models.AuthAttempt{
		ConnectionID: conn.ID,
		SourceIP:     "203.0.113.9",
		Method:       models.AuthMethodToken,
	}, long)

	var row models.AuthAttempt
	assert.NoError(t, db.First(&row).Error)
	assert.True(t, row.Success)
	assert.True(t, strings.HasPrefix(row.Fingerprint, "hash_"))
	assert.Len(t, row.Fingerprint, len("hash_")+8)
	assert.Len(t, row.CredentialPrefix, CredentialPrefixLimit)
}

func TestFingerprint_Deterministic(t *testing.T) {
	assert.Equal(t, Fingerprint("abc"), Fingerprint("abc"))
	assert.NotEqual(t, Fingerprint("abc"), Fingerprint("abd"))
	assert.True(t, strings.HasPrefix(Fingerprint("abc"), "hash_"))
}

func TestRecorder_ChannelInteractionNullExtraction(t *testing.T) {
	db := setupRecorderTestDB(t)
	rec := NewRecorder(db)

	rec.RecordChannelInteraction(&models.ChannelInteraction{
		Channel:  models.ChannelWhatsApp,
		Endpoint: "/webhook/whatsapp",
		Method:   "POST",
		Payload:  "not json",
		SourceIP: "203.0.113.9",
	})

	var row models.ChannelInteraction
	assert.NoError(t, db.First(&row).Error)
	assert.Nil(t, row.SenderID)
	assert.Nil(t, row.MessageText)
}
