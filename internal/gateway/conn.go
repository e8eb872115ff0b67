package gateway

import (
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/0xksdata/openclaw-honeypot/internal/classifier"
	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
	"github.com/0xksdata/openclaw-honeypot/internal/protocol"
	"github.com/0xksdata/openclaw-honeypot/internal/services"
)

// State of one WebSocket connection.
type State int

const (
	StateNew State = iota
	StateAuthenticated
	StateClosed
)

// TickInterval is the cadence of autonomous tick events.
const TickInterval = 30 * time.Second

const writeTimeout = 10 * time.Second

// Conn owns one WebSocket: its state machine, its tick timer, and the single
// writer path that serializes handler responses against ticks.
type Conn struct {
	id       string
	sourceIP string
	ws       *websocket.Conn
	gw       *Gateway

	writeMu sync.Mutex // single writer path per socket

	mu    sync.Mutex // guards state and seq
	state State
	seq   int64

	done      chan struct{}
	closeOnce sync.Once
}

func newConn(id, sourceIP string, ws *websocket.Conn, gw *Gateway) *Conn {
	return &Conn{
		id:       id,
		sourceIP: sourceIP,
		ws:       ws,
		gw:       gw,
		state:    StateNew,
		done:     make(chan struct{}),
	}
}

// ID returns the persisted connection ID.
func (c *Conn) ID() string { return c.id }

// State returns the current machine state.
func (c *Conn) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conn) nextSeq() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// run is the read loop. It drives the state machine until the peer goes away.
func (c *Conn) run() {
	defer c.Close()

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		c.handleInbound(data)
	}
}

// handleInbound classifies, records and then processes one raw message.
func (c *Conn) handleInbound(data []byte) {
	raw := string(data)

	res := classifier.Classify(raw)
	if res.Suspicious() {
		c.gw.recordSuspicious(res, raw, c.sourceIP, "", "ws", c.id)
	}

	switch c.State() {
	case StateNew:
		c.handleEnvelope(raw, res)
	case StateAuthenticated:
		c.handleFrame(data, raw, res)
	case StateClosed:
		// Late frame after teardown; nothing to do.
	}
}

// handleEnvelope processes the first client message. Any JSON object is
// accepted as a connect envelope; the honeypot never rejects a handshake.
func (c *Conn) handleEnvelope(raw string, res classifier.Result) {
	env := protocol.ParseEnvelope([]byte(raw))
	if env == nil {
		c.recordInbound(models.FrameInvalid, "", "", raw, res)
		logger.WithFields(map[string]interface{}{
			"connection": c.id, "ip": c.sourceIP,
		}).Debug("non-envelope frame before handshake")
		return
	}

	c.recordInbound(models.FrameConnect, "", "", raw, res)

	if env.MaxProtocol != 0 && (protocol.ProtocolVersion < env.MinProtocol || protocol.ProtocolVersion > env.MaxProtocol) {
		// Deception beats correctness: note the mismatch, accept anyway.
		logger.WithFields(map[string]interface{}{
			"connection": c.id,
			"min":        env.MinProtocol,
			"max":        env.MaxProtocol,
		}).Warn("protocol range mismatch, accepting anyway")
	}

	method := models.AuthMethodNone
	credential := ""
	if env.Auth != nil {
		switch {
		case env.Auth.Password != "":
			method = models.AuthMethodPassword
			credential = env.Auth.Password
		case env.Auth.Token != "":
			method = models.AuthMethodToken
			credential = env.Auth.Token
		}
	}

	c.gw.recorder.RecordAuthAttempt(&models.AuthAttempt{
		ConnectionID:  c.id,
		SourceIP:      c.sourceIP,
		Method:        method,
		ClientID:      env.Client.ID,
		ClientVersion: env.Client.Version,
		Platform:      env.Client.Platform,
	}, credential)
	c.gw.sessions.Touch(c.sourceIP, services.Delta{AuthAttempts: 1})

	hello := payload{
		"type":     protocol.TypeHelloOK,
		"protocol": protocol.ProtocolVersion,
		"server": payload{
			"version": c.gw.cfg.FakeVersion,
			"commit":  "e9c4b71",
			"host":    "openclaw-gw-01",
			"connId":  c.id,
		},
		"features": payload{
			"methods": c.gw.registry.Methods(),
			"events":  EventNames,
		},
		"snapshot": payload{
			"presence": []payload{},
			"channels": payload{},
		},
		"policy": payload{
			"maxPayload":       524288,
			"maxBufferedBytes": 1572864,
			"tickIntervalMs":   TickInterval.Milliseconds(),
		},
	}
	if len(env.Device) > 0 {
		hello["auth"] = payload{
			"deviceToken": MintDeviceToken(c.gw.cfg),
			"role":        "admin",
			"scopes":      []string{"*"},
			"issuedAtMs":  time.Now().UnixMilli(),
		}
	}

	if err := c.send(hello); err != nil {
		return
	}
	c.recordOutbound(models.FrameResponse, "", "", hello)

	c.mu.Lock()
	c.state = StateAuthenticated
	c.mu.Unlock()

	go c.tickLoop()

	logger.WithFields(map[string]interface{}{
		"connection": c.id,
		"ip":         c.sourceIP,
		"client":     env.Client.ID,
		"auth":       method,
	}).Info("gateway handshake accepted")
}

// handleFrame processes one post-handshake message.
func (c *Conn) handleFrame(data []byte, raw string, res classifier.Result) {
	frame := protocol.ParseFrame(data)

	switch frame.Kind {
	case protocol.KindRequest:
		req := frame.Request
		c.recordInbound(models.FrameRequest, req.Method, req.ID, raw, res)

		response := c.gw.registry.Dispatch(req, &Ctx{ConnID: c.id, Cfg: c.gw.cfg})
		if err := c.send(response); err != nil {
			return
		}
		c.recordOutbound(models.FrameResponse, req.Method, req.ID, response)

	case protocol.KindResponse:
		c.recordInbound(models.FrameResponse, "", frame.Response.ID, raw, res)
	case protocol.KindEvent:
		c.recordInbound(models.FrameEvent, frame.Event.Event, "", raw, res)
	default:
		c.recordInbound(models.FrameInvalid, "", "", raw, res)
	}
}

// SendEvent emits one event frame with a fresh per-connection sequence.
// Silently skipped unless the connection is authenticated and open.
func (c *Conn) SendEvent(name string, p interface{}) {
	if c.State() != StateAuthenticated {
		return
	}
	ev := protocol.NewEvent(name, p, c.nextSeq())
	if err := c.send(ev); err != nil {
		return
	}
	c.recordOutbound(models.FrameEvent, name, "", ev)
}

// tickLoop emits the autonomous heartbeat until teardown.
func (c *Conn) tickLoop() {
	ticker := time.NewTicker(TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.SendEvent("tick", payload{"ts": time.Now().UnixMilli()})
		}
	}
}

// send serializes one frame onto the socket. A write failure marks the
// connection dead.
func (c *Conn) send(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if c.State() == StateClosed {
		return websocket.ErrCloseSent
	}

	_ = c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.ws.WriteJSON(v); err != nil {
		go c.Close()
		return err
	}
	return nil
}

// Close tears the connection down: stop ticks, stamp the row, evict from the
// hub. Idempotent.
func (c *Conn) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.state = StateClosed
		c.mu.Unlock()

		close(c.done)
		_ = c.ws.Close()

		c.gw.recorder.CloseConnection(c.id)
		c.gw.hub.Remove(c.id)

		logger.WithFields(map[string]interface{}{
			"connection": c.id, "ip": c.sourceIP,
		}).Info("gateway connection closed")
	})
}

func (c *Conn) recordInbound(kind, method, correlationID, raw string, res classifier.Result) {
	c.gw.recorder.RecordWSMessage(&models.WSMessage{
		ConnectionID:  c.id,
		Direction:     models.DirectionInbound,
		Kind:          kind,
		Method:        method,
		CorrelationID: correlationID,
		Payload:       raw,
		Raw:           raw,
		PayloadSize:   len(raw),
		Suspicious:    res.Suspicious(),
		Reasons:       strings.Join(res.Reasons, "; "),
	})

	delta := services.Delta{WSMessages: 1}
	if res.Suspicious() {
		delta.Suspicious = int64(len(res.Categories))
		delta.IsScanner, delta.IsExploiter = res.Flags()
	}
	c.gw.sessions.Touch(c.sourceIP, delta)
}

func (c *Conn) recordOutbound(kind, method, correlationID string, v interface{}) {
	raw := ""
	if data, err := protocol.Marshal(v); err == nil {
		raw = string(data)
	}
	c.gw.recorder.RecordWSMessage(&models.WSMessage{
		ConnectionID:  c.id,
		Direction:     models.DirectionOutbound,
		Kind:          kind,
		Method:        method,
		CorrelationID: correlationID,
		Payload:       raw,
		Raw:           raw,
		PayloadSize:   len(raw),
	})
}
