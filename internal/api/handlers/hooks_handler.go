package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

// Hooks serves the product's own webhook family under /hooks/.
func (e *Env) Hooks(c *gin.Context) {
	sub := strings.TrimPrefix(c.Param("path"), "/")

	var resp gin.H
	switch sub {
	case "wake":
		resp = gin.H{"ok": true, "mode": "now"}
	case "agent":
		resp = gin.H{"ok": true, "runId": uuid.New().String()}
	default:
		resp = gin.H{"ok": true}
	}

	e.recordInteraction(c, models.ChannelHooks, nil, nil, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}

// GenericWebhook answers any other /webhook/<channel> hit.
func (e *Env) GenericWebhook(c *gin.Context, channel string) {
	var senderID, messageText *string
	if obj := bodyObject(c); obj != nil {
		senderID = dig(obj, "sender")
		messageText = dig(obj, "message")
		if messageText == nil {
			messageText = dig(obj, "text")
		}
	}

	resp := gin.H{"ok": true, "channel": channel}
	e.recordInteraction(c, models.ChannelCustom, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}
