package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/gateway"
)

// Status reports gateway stats plus per-channel connection state, matching
// the control UI's status call.
func (e *Env) Status(c *gin.Context) {
	channels := make(map[string]gin.H, len(gateway.ChannelNames))
	for _, name := range gateway.ChannelNames {
		connected := name == "whatsapp" || name == "telegram"
		status := "disconnected"
		if connected {
			status = "connected"
		}
		channels[name] = gin.H{"connected": connected, "status": status}
	}

	c.JSON(http.StatusOK, gin.H{
		"gateway": gin.H{
			"version":     e.Cfg.FakeVersion,
			"host":        "openclaw-gw-01",
			"uptime":      e.Uptime(),
			"connections": e.Hub.Count(),
		},
		"channels": channels,
	})
}
