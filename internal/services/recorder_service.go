package services

import (
	"fmt"
	"hash/fnv"
	"time"

	"gorm.io/gorm"

	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/metrics"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

// Hard truncation limits for persisted payloads. The size fields on the rows
// keep the true lengths.
const (
	RequestBodyLimit       = 10000
	ResponseBodyLimit      = 5000
	RawFrameLimit          = 10000
	SuspiciousPayloadLimit = 5000
	CredentialPrefixLimit  = 100
)

// Recorder is the write-only facade over the evidence tables. Every method
// swallows persistence errors: capture is best-effort and must never block
// or fail the response path.
type Recorder struct {
	db *gorm.DB
}

// NewRecorder returns a Recorder using the provided DB.
func NewRecorder(db *gorm.DB) *Recorder {
	return &Recorder{db: db}
}

// Truncate caps s at limit characters, cutting only on a rune boundary.
func Truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}

// Fingerprint produces the 32-bit non-cryptographic credential hash used for
// deduplication during analysis. Not a security primitive.
func Fingerprint(credential string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(credential))
	return fmt.Sprintf("hash_%08x", h.Sum32())
}

// RecordConnection creates a Connection row and returns it. The returned
// value carries a usable ID even when the insert failed, so the caller can
// keep serving the peer.
func (r *Recorder) RecordConnection(sourceIP, userAgent, transport string) *models.Connection {
	conn := &models.Connection{
		SourceIP:    sourceIP,
		UserAgent:   userAgent,
		Transport:   transport,
		ConnectedAt: time.Now(),
	}
	if err := r.db.Create(conn).Error; err != nil {
		logger.Log().WithError(err).Error("record connection")
	}
	metrics.IncConnection(transport)
	return conn
}

// CloseConnection stamps DisconnectedAt once; an already-closed row is left
// untouched.
func (r *Recorder) CloseConnection(id string) {
	now := time.Now()
	err := r.db.Model(&models.Connection{}).
		Where("id = ? AND disconnected_at IS NULL", id).
		Update("disconnected_at", &now).Error
	if err != nil {
		logger.Log().WithError(err).WithField("connection", id).Error("close connection")
	}
}

// RecordRequest persists one completed HTTP exchange.
func (r *Recorder) RecordRequest(req *models.Request) {
	req.Body = Truncate(req.Body, RequestBodyLimit)
	req.ResponseBody = Truncate(req.ResponseBody, ResponseBodyLimit)
	if err := r.db.Create(req).Error; err != nil {
		logger.Log().WithError(err).Error("record request")
	}
	metrics.IncRequest()
}

// RecordWSMessage persists one framed socket message.
func (r *Recorder) RecordWSMessage(msg *models.WSMessage) {
	msg.Raw = Truncate(msg.Raw, RawFrameLimit)
	msg.Payload = Truncate(msg.Payload, RawFrameLimit)
	if err := r.db.Create(msg).Error; err != nil {
		logger.Log().WithError(err).Error("record ws message")
	}
	metrics.IncWSMessage(msg.Direction)
}

// RecordAuthAttempt persists a credential presentation. The credential is
// stored as fingerprint plus raw prefix; Success is always true.
func (r *Recorder) RecordAuthAttempt(attempt *models.AuthAttempt, credential string) {
	attempt.Fingerprint = Fingerprint(credential)
	attempt.CredentialPrefix = Truncate(credential, CredentialPrefixLimit)
	attempt.Success = true
	if err := r.db.Create(attempt).Error; err != nil {
		logger.Log().WithError(err).Error("record auth attempt")
	}
	metrics.IncAuthAttempt()
}

// RecordChannelInteraction persists a webhook hit on an impersonated
// messaging platform.
func (r *Recorder) RecordChannelInteraction(ci *models.ChannelInteraction) {
	ci.Payload = Truncate(ci.Payload, RequestBodyLimit)
	ci.ResponseBody = Truncate(ci.ResponseBody, ResponseBodyLimit)
	if err := r.db.Create(ci).Error; err != nil {
		logger.Log().WithError(err).Error("record channel interaction")
	}
}

// RecordSuspicious persists one classifier hit.
func (r *Recorder) RecordSuspicious(sa *models.SuspiciousActivity) {
	sa.Payload = Truncate(sa.Payload, SuspiciousPayloadLimit)
	if err := r.db.Create(sa).Error; err != nil {
		logger.Log().WithError(err).Error("record suspicious activity")
	}
	metrics.IncSuspicious(sa.Category)
}
