package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/gateway"
)

// WebSocketUpgrade hands any upgrade request on any path to the gateway
// before the HTTP capture pipeline sees it. WebSocket traffic is recorded by
// the connection state machine instead.
func WebSocketUpgrade(gw *gateway.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gateway.IsUpgrade(c.Request) {
			gw.HandleUpgrade(c.Writer, c.Request)
			c.Abort()
			return
		}
		c.Next()
	}
}
