package gateway

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/0xksdata/openclaw-honeypot/internal/config"
	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/protocol"
)

// payload is shorthand for the canned JSON objects handlers return.
type payload = map[string]interface{}

// Ctx carries the per-call context a handler may read. Handlers hold no
// other state: every response is built from the request, the clock and the
// configured fake identity.
type Ctx struct {
	ConnID string
	Cfg    config.Config
}

// HandlerFunc builds the canned payload for one method.
type HandlerFunc func(req *protocol.Request, ctx *Ctx) (interface{}, error)

// Registry maps method names to response builders. Built once at startup and
// never mutated afterward.
type Registry struct {
	cfg      config.Config
	handlers map[string]HandlerFunc
	methods  []string
}

// EventNames lists every event the gateway may emit. Only tick fires
// autonomously; the rest are advertised to look complete.
var EventNames = []string{
	"connect.challenge", "agent", "chat", "presence", "tick", "talk.mode",
	"shutdown", "health", "heartbeat", "cron",
	"node.pair.requested", "node.pair.resolved", "node.invoke.request",
	"device.pair.requested", "device.pair.resolved",
	"voicewake.changed", "exec.approval.requested", "exec.approval.resolved",
}

// ChannelNames are the six messaging integrations the product claims.
var ChannelNames = []string{"whatsapp", "telegram", "discord", "slack", "signal", "imessage"}

// NewRegistry builds the immutable method table.
func NewRegistry(cfg config.Config) *Registry {
	r := &Registry{cfg: cfg, handlers: make(map[string]HandlerFunc)}
	r.install()

	r.methods = make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		r.methods = append(r.methods, name)
	}
	sort.Strings(r.methods)

	return r
}

// Methods returns the sorted method catalog for the hello-ok envelope.
func (r *Registry) Methods() []string {
	return r.methods
}

// Dispatch runs the handler for a request and frames the result. Unknown
// methods and handler panics both come back as error responses; the wire
// never sees internals.
func (r *Registry) Dispatch(req *protocol.Request, ctx *Ctx) (res protocol.Response) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.WithFields(map[string]interface{}{
				"method":     req.Method,
				"connection": ctx.ConnID,
				"panic":      rec,
			}).Error("handler panic")
			res = protocol.ErrResponse(req.ID, protocol.CodeInternalError, "internal error")
		}
	}()

	handler, ok := r.handlers[req.Method]
	if !ok {
		return protocol.ErrResponse(req.ID, protocol.CodeMethodNotFound, "method not found: "+req.Method)
	}

	out, err := handler(req, ctx)
	if err != nil {
		return protocol.ErrResponse(req.ID, protocol.CodeInternalError, "internal error")
	}
	return protocol.OKResponse(req.ID, out)
}

func nowMs() int64 {
	return time.Now().UnixMilli()
}

func params(req *protocol.Request) payload {
	var p payload
	if len(req.Params) > 0 {
		_ = json.Unmarshal(req.Params, &p)
	}
	if p == nil {
		p = payload{}
	}
	return p
}

func channelStates() []payload {
	out := make([]payload, 0, len(ChannelNames))
	for _, name := range ChannelNames {
		connected := name == "whatsapp" || name == "telegram"
		out = append(out, payload{
			"id":        name,
			"name":      name,
			"connected": connected,
			"status":    map[bool]string{true: "connected", false: "disconnected"}[connected],
			"lastSeen":  nowMs(),
		})
	}
	return out
}

func fakeSession(id string) payload {
	return payload{
		"id":           id,
		"title":        "Untitled session",
		"model":        "claude-sonnet-4-5",
		"messageCount": 12,
		"createdAtMs":  nowMs() - 86_400_000,
		"updatedAtMs":  nowMs() - 3_600_000,
	}
}

func (r *Registry) install() {
	h := r.handlers
	cfg := r.cfg

	// health / status
	h["health"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "version": cfg.FakeVersion, "uptimeMs": nowMs() % 9_000_000}, nil
	}
	h["status"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{
			"version":  cfg.FakeVersion,
			"host":     "openclaw-gw-01",
			"uptimeMs": nowMs() % 9_000_000,
			"channels": channelStates(),
		}, nil
	}
	h["logs.tail"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"lines": []string{
			"[gateway] channel whatsapp connected",
			"[gateway] heartbeat ok",
			"[agent] idle",
		}}, nil
	}

	// channels
	h["channels.status"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"channels": channelStates()}, nil
	}
	h["channels.logout"] = func(req *protocol.Request, _ *Ctx) (interface{}, error) {
		p := params(req)
		return payload{"ok": true, "channel": p["channel"]}, nil
	}

	// usage
	h["usage.status"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"tokensUsed": 184_233, "tokensLimit": 1_000_000, "resetAtMs": nowMs() + 43_200_000}, nil
	}
	h["usage.cost"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"currency": "USD", "monthToDate": 12.47, "projected": 31.02}, nil
	}

	// tts
	h["tts.status"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"enabled": false, "provider": "none"}, nil
	}
	h["tts.providers"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"providers": []string{"elevenlabs", "openai", "edge"}}, nil
	}

	// config
	fakeConfig := func() payload {
		return payload{
			"gateway": payload{"port": 18789, "bind": "0.0.0.0"},
			"agent":   payload{"model": "claude-sonnet-4-5", "maxTokens": 8192},
			"channels": payload{
				"whatsapp": payload{"enabled": true},
				"telegram": payload{"enabled": true},
			},
		}
	}
	h["config.get"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"config": fakeConfig(), "path": "/home/openclaw/.openclaw/config.yaml"}, nil
	}
	h["config.set"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "restartRequired": false}, nil
	}
	h["config.apply"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "applied": true}, nil
	}
	h["config.patch"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "config": fakeConfig()}, nil
	}
	h["config.schema"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"schema": payload{"type": "object", "properties": payload{
			"gateway": payload{"type": "object"},
			"agent":   payload{"type": "object"},
		}}}, nil
	}

	// exec approvals
	h["exec.approvals.get"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"mode": "ask", "pending": []payload{}}, nil
	}
	h["exec.approvals.set"] = func(req *protocol.Request, _ *Ctx) (interface{}, error) {
		p := params(req)
		mode, _ := p["mode"].(string)
		if mode == "" {
			mode = "ask"
		}
		return payload{"ok": true, "mode": mode}, nil
	}

	// wizard
	h["wizard.start"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"wizardId": uuid.New().String(), "step": "welcome"}, nil
	}
	h["wizard.next"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"step": "channels", "done": false}, nil
	}
	h["wizard.cancel"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}
	h["wizard.status"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"active": false}, nil
	}

	// talk / models / agents / skills
	h["talk.mode"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"mode": "text"}, nil
	}
	h["models.list"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"models": []payload{
			{"id": "claude-sonnet-4-5", "name": "Claude Sonnet 4.5", "default": true},
			{"id": "claude-opus-4-1", "name": "Claude Opus 4.1", "default": false},
			{"id": "gpt-4o", "name": "GPT-4o", "default": false},
		}}, nil
	}
	h["agents.list"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"agents": []payload{
			{"id": "main", "name": "Assistant", "model": "claude-sonnet-4-5", "active": true},
		}}, nil
	}
	h["skills.status"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"skills": []payload{
			{"name": "browser", "installed": true, "version": "1.4.2"},
			{"name": "calendar", "installed": true, "version": "0.9.0"},
			{"name": "shell", "installed": false},
		}}, nil
	}
	h["skills.bins"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"bins": []string{"ffmpeg", "yt-dlp", "pandoc"}}, nil
	}
	h["skills.install"] = func(req *protocol.Request, _ *Ctx) (interface{}, error) {
		p := params(req)
		return payload{"ok": true, "skill": p["name"], "installed": true}, nil
	}
	h["skills.update"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "updated": 0}, nil
	}
	h["update.run"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "version": cfg.FakeVersion, "upToDate": true}, nil
	}

	// voicewake
	h["voicewake.get"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"enabled": false, "phrase": "hey claw"}, nil
	}
	h["voicewake.set"] = func(req *protocol.Request, _ *Ctx) (interface{}, error) {
		p := params(req)
		return payload{"ok": true, "enabled": p["enabled"]}, nil
	}

	// sessions
	h["sessions.list"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"sessions": []payload{
			fakeSession("sess_" + uuid.New().String()[:8]),
			fakeSession("sess_" + uuid.New().String()[:8]),
		}}, nil
	}
	h["sessions.preview"] = func(req *protocol.Request, _ *Ctx) (interface{}, error) {
		p := params(req)
		id, _ := p["id"].(string)
		if id == "" {
			id = "sess_default"
		}
		return payload{"session": fakeSession(id), "messages": []payload{
			{"role": "user", "text": "remind me to water the plants"},
			{"role": "assistant", "text": "Done - I'll remind you at 6pm."},
		}}, nil
	}
	h["sessions.patch"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}
	h["sessions.reset"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "cleared": true}, nil
	}
	h["sessions.delete"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "deleted": true}, nil
	}
	h["sessions.compact"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "tokensBefore": 48_211, "tokensAfter": 9_180}, nil
	}

	// heartbeats / wake
	h["last-heartbeat"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ts": nowMs() - 14_000, "ok": true}, nil
	}
	h["set-heartbeats"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}
	h["wake"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "mode": "now"}, nil
	}

	// node pairing
	h["node.pair.request"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"pairingId": uuid.New().String(), "code": "824-119", "expiresAtMs": nowMs() + 300_000}, nil
	}
	h["node.pair.list"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"pending": []payload{}, "paired": []payload{
			{"nodeId": "node-mac-studio", "name": "studio", "platform": "darwin", "pairedAtMs": nowMs() - 604_800_000},
		}}, nil
	}
	h["node.pair.approve"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "approved": true}, nil
	}
	h["node.pair.reject"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "rejected": true}, nil
	}
	h["node.pair.verify"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "verified": true}, nil
	}

	// device pairing / tokens
	h["device.pair.list"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"devices": []payload{
			{"deviceId": "dev-pixel-9", "name": "Pixel 9", "role": "admin", "pairedAtMs": nowMs() - 1_209_600_000},
		}}, nil
	}
	h["device.pair.approve"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "approved": true}, nil
	}
	h["device.pair.reject"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "rejected": true}, nil
	}
	h["device.token.rotate"] = func(_ *protocol.Request, ctx *Ctx) (interface{}, error) {
		return payload{"ok": true, "token": MintDeviceToken(ctx.Cfg), "issuedAtMs": nowMs()}, nil
	}
	h["device.token.revoke"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "revoked": true}, nil
	}

	// nodes
	h["node.rename"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}
	h["node.list"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"nodes": []payload{
			{"nodeId": "node-mac-studio", "name": "studio", "platform": "darwin", "online": true, "caps": []string{"exec", "browser"}},
		}}, nil
	}
	h["node.describe"] = func(req *protocol.Request, _ *Ctx) (interface{}, error) {
		p := params(req)
		return payload{"nodeId": p["nodeId"], "platform": "darwin", "online": true,
			"commands": []string{"system.run", "browser.open", "screen.capture"}}, nil
	}
	h["node.invoke"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"invocationId": uuid.New().String(), "accepted": true}, nil
	}
	h["node.invoke.result"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}
	h["node.event"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}

	// cron
	fakeJob := func(id, schedule, text string) payload {
		return payload{"id": id, "schedule": schedule, "payload": payload{"text": text},
			"enabled": true, "nextRunAtMs": nowMs() + 3_600_000}
	}
	h["cron.list"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"jobs": []payload{
			fakeJob("cron_morning", "0 7 * * *", "morning briefing"),
			fakeJob("cron_standup", "30 9 * * 1-5", "standup reminder"),
		}}, nil
	}
	h["cron.status"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"running": true, "jobs": 2}, nil
	}
	h["cron.add"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "id": "cron_" + uuid.New().String()[:8]}, nil
	}
	h["cron.update"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}
	h["cron.remove"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "removed": true}, nil
	}
	h["cron.run"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "runId": uuid.New().String()}, nil
	}
	h["cron.runs"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"runs": []payload{
			{"runId": uuid.New().String(), "startedAtMs": nowMs() - 7_200_000, "status": "ok"},
		}}, nil
	}

	// presence / events
	h["system-presence"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"presence": []payload{
			{"kind": "gateway", "host": "openclaw-gw-01", "online": true},
		}}, nil
	}
	h["system-event"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true}, nil
	}

	// messaging / agent
	h["send"] = func(req *protocol.Request, _ *Ctx) (interface{}, error) {
		p := params(req)
		return payload{"ok": true, "messageId": uuid.New().String(), "channel": p["channel"]}, nil
	}
	h["agent"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"runId": uuid.New().String(), "accepted": true}, nil
	}
	h["agent.identity.get"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"name": "Claw", "emoji": "🦞", "model": "claude-sonnet-4-5"}, nil
	}
	h["agent.wait"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"done": true, "status": "idle"}, nil
	}
	h["browser.request"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"requestId": uuid.New().String(), "accepted": true}, nil
	}

	// chat
	h["chat.history"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"messages": []payload{
			{"id": uuid.New().String(), "role": "user", "text": "what's on my calendar", "tsMs": nowMs() - 600_000},
			{"id": uuid.New().String(), "role": "assistant", "text": "You have a 2pm design review.", "tsMs": nowMs() - 598_000},
		}}, nil
	}
	h["chat.abort"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "aborted": false}, nil
	}
	h["chat.send"] = func(_ *protocol.Request, _ *Ctx) (interface{}, error) {
		return payload{"ok": true, "messageId": uuid.New().String(), "queued": true}, nil
	}
}
