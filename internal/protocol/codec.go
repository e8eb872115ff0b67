package protocol

import (
	"encoding/json"
)

// Frame type discriminators on the wire.
const (
	TypeRequest  = "req"
	TypeResponse = "res"
	TypeEvent    = "event"
	TypeHelloOK  = "hello-ok"
)

// Error code vocabulary used in response frames.
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnauthorized   = "unauthorized"
	CodeNotFound       = "not_found"
	CodeMethodNotFound = "method_not_found"
	CodeInternalError  = "internal_error"
	CodeRateLimited    = "rate_limited"
)

// ProtocolVersion the impersonated gateway speaks.
const ProtocolVersion = 1

// Request is a client-initiated method call.
type Request struct {
	Type   string          `json:"type"`
	ID     string          `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params,omitempty"`
}

// ErrObj carries a structured failure on a response frame.
type ErrObj struct {
	Code         string      `json:"code"`
	Message      string      `json:"message"`
	Details      interface{} `json:"details,omitempty"`
	Retryable    *bool       `json:"retryable,omitempty"`
	RetryAfterMs *int64      `json:"retryAfterMs,omitempty"`
}

// Response answers a request, correlated by ID.
type Response struct {
	Type    string      `json:"type"`
	ID      string      `json:"id"`
	OK      bool        `json:"ok"`
	Payload interface{} `json:"payload,omitempty"`
	Error   *ErrObj     `json:"error,omitempty"`
}

// Event is a server-initiated notification.
type Event struct {
	Type    string      `json:"type"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
	Seq     int64       `json:"seq,omitempty"`
}

// ClientInfo identifies the connecting client inside an envelope.
type ClientInfo struct {
	ID       string `json:"id"`
	Version  string `json:"version"`
	Platform string `json:"platform"`
	Mode     string `json:"mode"`
}

// AuthBlock carries the credentials a client presents.
type AuthBlock struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ConnectEnvelope is the first client message on a fresh socket. It has no
// "type" field. Validation is permissive: everything is optional, and a
// malformed envelope is still worth logging.
type ConnectEnvelope struct {
	MinProtocol int                    `json:"minProtocol"`
	MaxProtocol int                    `json:"maxProtocol"`
	Client      ClientInfo             `json:"client"`
	Caps        []string               `json:"caps,omitempty"`
	Commands    []string               `json:"commands,omitempty"`
	Permissions map[string]interface{} `json:"permissions,omitempty"`
	PathEnv     string                 `json:"pathEnv,omitempty"`
	Role        string                 `json:"role,omitempty"`
	Scopes      []string               `json:"scopes,omitempty"`
	Device      map[string]interface{} `json:"device,omitempty"`
	Auth        *AuthBlock             `json:"auth,omitempty"`
	Locale      string                 `json:"locale,omitempty"`
	UserAgent   string                 `json:"userAgent,omitempty"`
}

// Frame kinds returned by ParseFrame.
const (
	KindRequest  = "request"
	KindResponse = "response"
	KindEvent    = "event"
	KindInvalid  = "invalid"
)

// ParsedFrame is the result of decoding one inbound message.
type ParsedFrame struct {
	Kind     string
	Request  *Request
	Response *Response
	Event    *Event
}

// ParseFrame decodes an inbound message into one of the three frame shapes.
// Anything that does not decode, or carries an unknown type, comes back as
// KindInvalid; the socket stays open either way.
func ParseFrame(data []byte) ParsedFrame {
	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return ParsedFrame{Kind: KindInvalid}
	}

	switch probe.Type {
	case TypeRequest:
		var req Request
		if err := json.Unmarshal(data, &req); err != nil || req.ID == "" || req.Method == "" {
			return ParsedFrame{Kind: KindInvalid}
		}
		return ParsedFrame{Kind: KindRequest, Request: &req}
	case TypeResponse:
		var res Response
		if err := json.Unmarshal(data, &res); err != nil {
			return ParsedFrame{Kind: KindInvalid}
		}
		return ParsedFrame{Kind: KindResponse, Response: &res}
	case TypeEvent:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			return ParsedFrame{Kind: KindInvalid}
		}
		return ParsedFrame{Kind: KindEvent, Event: &ev}
	default:
		return ParsedFrame{Kind: KindInvalid}
	}
}

// ParseEnvelope decodes the connect envelope. It returns nil only when the
// bytes are not a JSON object at all; missing fields are tolerated.
func ParseEnvelope(data []byte) *ConnectEnvelope {
	var env ConnectEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil
	}
	return &env
}

// OKResponse builds a success response for a request ID.
func OKResponse(id string, payload interface{}) Response {
	return Response{Type: TypeResponse, ID: id, OK: true, Payload: payload}
}

// ErrResponse builds a failure response. The message is generic by design:
// nothing internal crosses the wire.
func ErrResponse(id, code, message string) Response {
	return Response{Type: TypeResponse, ID: id, OK: false, Error: &ErrObj{Code: code, Message: message}}
}

// NewEvent builds an event frame with the given per-connection sequence.
func NewEvent(name string, payload interface{}, seq int64) Event {
	return Event{Type: TypeEvent, Event: name, Payload: payload, Seq: seq}
}

// Marshal serializes any frame to its wire form.
func Marshal(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
