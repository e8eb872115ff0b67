package protocol

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFrame_Request(t *testing.T) {
	frame := ParseFrame([]byte(`{"type":"req","id":"r1","method":"channels.status","params":{"a":1}}`))
	require.Equal(t, KindRequest, frame.Kind)
	assert.Equal(t, "r1", frame.Request.ID)
	assert.Equal(t, "channels.status", frame.Request.Method)
	assert.JSONEq(t, `{"a":1}`, string(frame.Request.Params))
}

func TestParseFrame_RequestMissingFields(t *testing.T) {
	assert.Equal(t, KindInvalid, ParseFrame([]byte(`{"type":"req","method":"x"}`)).Kind)
	assert.Equal(t, KindInvalid, ParseFrame([]byte(`{"type":"req","id":"r1"}`)).Kind)
}

func TestParseFrame_Event(t *testing.T) {
	frame := ParseFrame([]byte(`{"type":"event","event":"tick","payload":{"ts":1},"seq":7}`))
	require.Equal(t, KindEvent, frame.Kind)
	assert.Equal(t, "tick", frame.Event.Event)
	assert.Equal(t, int64(7), frame.Event.Seq)
}

func TestParseFrame_Invalid(t *testing.T) {
	for _, raw := range []string{
		"not json",
		`"a string"`,
		`{"type":"unknown"}`,
		`{"no":"type"}`,
		`[1,2,3]`,
	} {
		assert.Equal(t, KindInvalid, ParseFrame([]byte(raw)).Kind, "raw: %s", raw)
	}
}

func TestParseEnvelope(t *testing.T) {
	env := ParseEnvelope([]byte(`{
		"minProtocol":1,"maxProtocol":1,
		"client":{"id":"cli","version":"0.4","platform":"linux","mode":"full"},
		"auth":{"token":"tok-123"},
		"device":{"id":"dev-1"}
	}`))
	require.NotNil(t, env)
	assert.Equal(t, 1, env.MinProtocol)
	assert.Equal(t, "cli", env.Client.ID)
	assert.Equal(t, "tok-123", env.Auth.Token)
	assert.Contains(t, env.Device, "id")
}

func TestParseEnvelope_Permissive(t *testing.T) {
	env := ParseEnvelope([]byte(`{}`))
	require.NotNil(t, env)
	assert.Zero(t, env.MinProtocol)
	assert.Nil(t, env.Auth)

	assert.Nil(t, ParseEnvelope([]byte(`garbage`)))
}

func TestResponseRoundTrip(t *testing.T) {
	out := OKResponse("r9", map[string]interface{}{"ok": true})
	data, err := Marshal(out)
	require.NoError(t, err)

	frame := ParseFrame(data)
	require.Equal(t, KindResponse, frame.Kind)
	assert.Equal(t, "r9", frame.Response.ID)
	assert.True(t, frame.Response.OK)
}

func TestErrResponseRoundTrip(t *testing.T) {
	out := ErrResponse("r2", CodeMethodNotFound, "method not found")
	data, err := Marshal(out)
	require.NoError(t, err)

	frame := ParseFrame(data)
	require.Equal(t, KindResponse, frame.Kind)
	assert.False(t, frame.Response.OK)
	require.NotNil(t, frame.Response.Error)
	assert.Equal(t, CodeMethodNotFound, frame.Response.Error.Code)
}

func TestEventRoundTrip(t *testing.T) {
	out := NewEvent("tick", map[string]int64{"ts": 123}, 4)
	data, err := Marshal(out)
	require.NoError(t, err)

	frame := ParseFrame(data)
	require.Equal(t, KindEvent, frame.Kind)
	assert.Equal(t, "tick", frame.Event.Event)
	assert.Equal(t, int64(4), frame.Event.Seq)

	var wire map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wire))
	assert.Equal(t, "event", wire["type"])
}
