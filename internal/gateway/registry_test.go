package gateway

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xksdata/openclaw-honeypot/internal/config"
	"github.com/0xksdata/openclaw-honeypot/internal/protocol"
)

func testCfg() config.Config {
	return config.Config{
		FakeVersion:      "2026.1.30",
		FakeGatewayToken: "test-gateway-token",
	}
}

var catalog = []string{
	"health", "status", "logs.tail",
	"channels.status", "channels.logout",
	"usage.status", "usage.cost",
	"tts.status", "tts.providers",
	"config.get", "config.set", "config.apply", "config.patch", "config.schema",
	"exec.approvals.get", "exec.approvals.set",
	"wizard.start", "wizard.next", "wizard.cancel", "wizard.status",
	"talk.mode", "models.list", "agents.list",
	"skills.status", "skills.bins", "skills.install", "skills.update",
	"update.run",
	"voicewake.get", "voicewake.set",
	"sessions.list", "sessions.preview", "sessions.patch", "sessions.reset", "sessions.delete", "sessions.compact",
	"last-heartbeat", "set-heartbeats", "wake",
	"node.pair.request", "node.pair.list", "node.pair.approve", "node.pair.reject", "node.pair.verify",
	"device.pair.list", "device.pair.approve", "device.pair.reject",
	"device.token.rotate", "device.token.revoke",
	"node.rename", "node.list", "node.describe", "node.invoke", "node.invoke.result", "node.event",
	"cron.list", "cron.status", "cron.add", "cron.update", "cron.remove", "cron.run", "cron.runs",
	"system-presence", "system-event",
	"send", "agent", "agent.identity.get", "agent.wait", "browser.request",
	"chat.history", "chat.abort", "chat.send",
}

func TestRegistry_CatalogComplete(t *testing.T) {
	r := NewRegistry(testCfg())
	methods := r.Methods()

	for _, name := range catalog {
		assert.Contains(t, methods, name)
	}
	assert.Len(t, methods, len(catalog))
}

func TestRegistry_DispatchEveryMethod(t *testing.T) {
	r := NewRegistry(testCfg())
	ctx := &Ctx{ConnID: "c1", Cfg: testCfg()}

	for _, name := range catalog {
		res := r.Dispatch(&protocol.Request{Type: protocol.TypeRequest, ID: "r1", Method: name}, ctx)
		assert.True(t, res.OK, "method %s", name)
		assert.Equal(t, "r1", res.ID)
		assert.Nil(t, res.Error, "method %s", name)
	}
}

func TestRegistry_ChannelsStatus(t *testing.T) {
	r := NewRegistry(testCfg())
	res := r.Dispatch(&protocol.Request{Type: protocol.TypeRequest, ID: "r1", Method: "channels.status"}, &Ctx{Cfg: testCfg()})
	require.True(t, res.OK)

	p, ok := res.Payload.(payload)
	require.True(t, ok)
	channels, ok := p["channels"].([]payload)
	require.True(t, ok)
	require.Len(t, channels, 6)

	names := make([]string, 0, len(channels))
	for _, ch := range channels {
		names = append(names, ch["id"].(string))
	}
	for _, want := range []string{"whatsapp", "telegram", "discord", "slack", "signal", "imessage"} {
		assert.Contains(t, names, want)
	}
}

func TestRegistry_UnknownMethod(t *testing.T) {
	r := NewRegistry(testCfg())
	res := r.Dispatch(&protocol.Request{Type: protocol.TypeRequest, ID: "r2", Method: "no.such"}, &Ctx{Cfg: testCfg()})

	assert.False(t, res.OK)
	require.NotNil(t, res.Error)
	assert.Equal(t, protocol.CodeMethodNotFound, res.Error.Code)
}

func TestRegistry_ParamsEcho(t *testing.T) {
	r := NewRegistry(testCfg())
	params, _ := json.Marshal(map[string]string{"channel": "telegram"})
	res := r.Dispatch(&protocol.Request{Type: protocol.TypeRequest, ID: "r3", Method: "channels.logout", Params: params}, &Ctx{Cfg: testCfg()})

	require.True(t, res.OK)
	p := res.Payload.(payload)
	assert.Equal(t, "telegram", p["channel"])
}

func TestRegistry_ResponsesAreFramed(t *testing.T) {
	r := NewRegistry(testCfg())
	res := r.Dispatch(&protocol.Request{Type: protocol.TypeRequest, ID: "r4", Method: "health"}, &Ctx{Cfg: testCfg()})

	data, err := protocol.Marshal(res)
	require.NoError(t, err)

	frame := protocol.ParseFrame(data)
	assert.Equal(t, protocol.KindResponse, frame.Kind)
	assert.Equal(t, "r4", frame.Response.ID)
}
