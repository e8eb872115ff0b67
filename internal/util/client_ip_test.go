package util

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP_Order(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "10.1.2.3:5555"
	assert.Equal(t, "10.1.2.3", ClientIP(req))

	req.Header.Set("X-Real-IP", "192.0.2.8")
	assert.Equal(t, "192.0.2.8", ClientIP(req))

	req.Header.Set("X-Forwarded-For", "198.51.100.1, 192.0.2.8, 10.1.2.3")
	assert.Equal(t, "198.51.100.1", ClientIP(req))
}

func TestClientIP_MalformedRemoteAddr(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "not-a-hostport"
	assert.Equal(t, "not-a-hostport", ClientIP(req))
}

func TestSerializeHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("User-Agent", "sqlmap/1.7")
	h.Add("Accept", "application/json")
	h.Add("Accept", "text/html")

	out := SerializeHeaders(h)

	var flat map[string]string
	assert.NoError(t, json.Unmarshal([]byte(out), &flat))
	assert.Equal(t, "sqlmap/1.7", flat["User-Agent"])
	assert.Equal(t, "application/json", flat["Accept"])
}
