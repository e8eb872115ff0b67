package util

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"
)

// ClientIP derives the peer address the way the impersonated gateway does:
// first X-Forwarded-For entry, then X-Real-IP, then the socket address.
// Forwarded headers are attacker-controlled; recording a spoofed value is
// still evidence, so no validation beyond trimming.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SerializeHeaders flattens headers to a JSON object for persistence.
// Multi-valued headers keep their first value only.
func SerializeHeaders(h http.Header) string {
	flat := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	data, err := json.Marshal(flat)
	if err != nil {
		return "{}"
	}
	return string(data)
}
