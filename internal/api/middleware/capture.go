package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/classifier"
	"github.com/0xksdata/openclaw-honeypot/internal/geoip"
	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
	"github.com/0xksdata/openclaw-honeypot/internal/services"
	"github.com/0xksdata/openclaw-honeypot/internal/util"
)

// Context keys downstream handlers read.
const (
	CtxConnectionID = "honeypot_connection_id"
	CtxClientIP     = "honeypot_client_ip"
	CtxBody         = "honeypot_body"
	CtxSuspicious   = "honeypot_suspicious"
	CtxReasons      = "honeypot_reasons"
)

// MaxBodyBytes bounds how much of an inbound body is read.
const MaxBodyBytes = 10 << 20

type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Capture is the evidence pipeline every HTTP endpoint funnels through:
// read the body, identify the peer, classify, persist, then let the canned
// handler answer and record the exchange on the way out. Persistence never
// blocks the response.
func Capture(recorder *services.Recorder, sessions *services.Sessions, alerts *services.Alerts, resolver geoip.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(io.LimitReader(c.Request.Body, MaxBodyBytes))
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		ip := util.ClientIP(c.Request)
		conn := recorder.RecordConnection(ip, c.Request.UserAgent(), models.TransportHTTP)
		sessions.Touch(ip, services.Delta{Requests: 1})

		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		// Classify the query both as sent and percent-decoded, so encoded
		// payloads match the same patterns as plain ones.
		payload := path + " " + query
		if decoded, err := url.QueryUnescape(query); err == nil && decoded != query {
			payload += " " + decoded
		}
		payload += " " + string(body)
		res := classifier.Classify(payload)
		if res.Suspicious() {
			for _, cat := range res.Categories {
				recorder.RecordSuspicious(&models.SuspiciousActivity{
					Category:     string(cat),
					Severity:     string(res.Severities[cat]),
					Description:  fmt.Sprintf("%s detected in http request", cat),
					Payload:      payload,
					Pattern:      res.MatchedPattern[cat],
					SourceIP:     ip,
					UserAgent:    c.Request.UserAgent(),
					Path:         path,
					Method:       c.Request.Method,
					ConnectionID: conn.ID,
				})
				if res.Severities[cat] == classifier.Critical {
					alerts.Notify(ip, string(cat), string(res.Severities[cat]), path)
				}
			}
			isScanner, isExploiter := res.Flags()
			sessions.Touch(ip, services.Delta{
				Suspicious:  int64(len(res.Categories)),
				IsScanner:   isScanner,
				IsExploiter: isExploiter,
			})
			fields := map[string]interface{}{
				"ip":         ip,
				"path":       path,
				"categories": res.Categories,
				"severity":   res.MaxSeverity(),
			}
			if loc := resolver.Lookup(ip); loc.Country != "" {
				fields["country"] = loc.Country
			}
			logger.WithFields(fields).Warn("suspicious http request")
		}

		c.Set(CtxConnectionID, conn.ID)
		c.Set(CtxClientIP, ip)
		c.Set(CtxBody, string(body))
		c.Set(CtxSuspicious, res.Suspicious())
		c.Set(CtxReasons, strings.Join(res.Reasons, "; "))

		writer := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		recorder.RecordRequest(&models.Request{
			ConnectionID: conn.ID,
			Method:       c.Request.Method,
			Path:         path,
			Query:        query,
			Headers:      util.SerializeHeaders(c.Request.Header),
			Body:         string(body),
			BodySize:     len(body),
			ResponseCode: writer.Status(),
			ResponseBody: writer.buf.String(),
			DurationMs:   time.Since(start).Milliseconds(),
			Suspicious:   res.Suspicious(),
			Reasons:      strings.Join(res.Reasons, "; "),
		})
		recorder.CloseConnection(conn.ID)
	}
}
