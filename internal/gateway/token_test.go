package gateway

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintDeviceToken(t *testing.T) {
	cfg := testCfg()
	signed := MintDeviceToken(cfg)
	require.NotEmpty(t, signed)

	token, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
		return []byte(cfg.FakeGatewayToken), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "admin", claims["role"])
	assert.Equal(t, "openclaw-gateway", claims["iss"])
}

func TestMintDeviceToken_Fresh(t *testing.T) {
	assert.NotEqual(t, MintDeviceToken(testCfg()), MintDeviceToken(testCfg()))
}
