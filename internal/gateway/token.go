package gateway

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/0xksdata/openclaw-honeypot/internal/config"
)

// MintDeviceToken produces a signed token shaped like the real gateway's
// device credentials. The signing key is the configured fake gateway token,
// so every minted token verifies against a secret the honeypot controls and
// nothing real.
func MintDeviceToken(cfg config.Config) string {
	claims := jwt.MapClaims{
		"sub":    "device:" + uuid.New().String()[:13],
		"role":   "admin",
		"scopes": []string{"*"},
		"iat":    time.Now().Unix(),
		"iss":    "openclaw-gateway",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.FakeGatewayToken))
	if err != nil {
		// HS256 signing over an in-memory key cannot fail in practice;
		// fall back to an opaque value rather than surface an error.
		return "oc_device_" + uuid.New().String()
	}
	return signed
}
