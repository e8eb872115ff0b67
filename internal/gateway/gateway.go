package gateway

import (
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/0xksdata/openclaw-honeypot/internal/classifier"
	"github.com/0xksdata/openclaw-honeypot/internal/config"
	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
	"github.com/0xksdata/openclaw-honeypot/internal/services"
	"github.com/0xksdata/openclaw-honeypot/internal/util"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	// Every origin is welcome here.
	CheckOrigin: func(*http.Request) bool { return true },
}

// Gateway speaks the impersonated product's framed protocol. One instance
// serves every socket; per-connection state lives on Conn.
type Gateway struct {
	cfg      config.Config
	registry *Registry
	hub      *Hub
	recorder *services.Recorder
	sessions *services.Sessions
	alerts   *services.Alerts
}

// New wires up the gateway.
func New(cfg config.Config, recorder *services.Recorder, sessions *services.Sessions, alerts *services.Alerts) *Gateway {
	return &Gateway{
		cfg:      cfg,
		registry: NewRegistry(cfg),
		hub:      NewHub(),
		recorder: recorder,
		sessions: sessions,
		alerts:   alerts,
	}
}

// Hub exposes the live-connection table.
func (g *Gateway) Hub() *Hub { return g.hub }

// Registry exposes the method catalog.
func (g *Gateway) Registry() *Registry { return g.registry }

// IsUpgrade reports whether a request is asking for a WebSocket.
func IsUpgrade(r *http.Request) bool {
	return websocket.IsWebSocketUpgrade(r)
}

// HandleUpgrade accepts the socket on any path and runs its read loop until
// the peer disconnects.
func (g *Gateway) HandleUpgrade(w http.ResponseWriter, r *http.Request) {
	ip := util.ClientIP(r)

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log().WithError(err).WithField("ip", ip).Debug("websocket upgrade failed")
		return
	}

	row := g.recorder.RecordConnection(ip, r.UserAgent(), models.TransportWebSocket)
	g.sessions.Touch(ip, services.Delta{})

	conn := newConn(row.ID, ip, ws, g)
	g.hub.Add(conn)

	logger.WithFields(map[string]interface{}{
		"connection": row.ID,
		"ip":         ip,
		"path":       r.URL.Path,
		"user_agent": r.UserAgent(),
	}).Info("websocket connection opened")

	conn.run()
}

// Shutdown closes every live socket.
func (g *Gateway) Shutdown() {
	g.hub.CloseAll()
}

// recordSuspicious persists one row per matched category and raises the
// session flags. Critical hits also fire the alert webhook.
func (g *Gateway) recordSuspicious(res classifier.Result, rawPayload, ip, userAgent, path, connID string) {
	for _, cat := range res.Categories {
		g.recorder.RecordSuspicious(&models.SuspiciousActivity{
			Category:     string(cat),
			Severity:     string(res.Severities[cat]),
			Description:  fmt.Sprintf("%s detected on gateway socket", cat),
			Payload:      rawPayload,
			Pattern:      res.MatchedPattern[cat],
			SourceIP:     ip,
			UserAgent:    userAgent,
			Path:         path,
			Method:       "WS",
			ConnectionID: connID,
		})
		if res.Severities[cat] == classifier.Critical {
			g.alerts.Notify(ip, string(cat), string(res.Severities[cat]), path)
		}
	}
}
