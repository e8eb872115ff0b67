package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

// Telegram serves the /bot<token>/<method> surface. The whole family routes
// through the catch-all because the token sits inside the first path segment.
func (e *Env) Telegram(c *gin.Context) {
	path := c.Request.URL.Path // /bot<token>[/<method>]
	method := ""
	if idx := strings.Index(path[1:], "/"); idx >= 0 {
		method = path[idx+2:]
	}

	var senderID, messageText *string
	if obj := bodyObject(c); obj != nil {
		senderID = dig(obj, "message", "from", "id")
		messageText = dig(obj, "message", "text")
	}

	var resp gin.H
	switch method {
	case "webhook":
		resp = gin.H{"ok": true}
	case "setWebhook":
		resp = gin.H{"ok": true, "result": true, "description": "Webhook is set"}
	case "getMe":
		resp = gin.H{"ok": true, "result": gin.H{
			"id":                          7291184563,
			"is_bot":                      true,
			"first_name":                  "OpenClaw",
			"username":                    "openclaw_bot",
			"can_join_groups":             true,
			"can_read_all_group_messages": false,
			"supports_inline_queries":     false,
		}}
	case "sendMessage":
		text := ""
		chatID := "0"
		if obj := bodyObject(c); obj != nil {
			if t := dig(obj, "text"); t != nil {
				text = *t
			}
			if id := dig(obj, "chat_id"); id != nil {
				chatID = *id
			}
		}
		resp = gin.H{"ok": true, "result": gin.H{
			"message_id": 184,
			"chat":       gin.H{"id": chatID, "type": "private"},
			"text":       text,
		}}
	default:
		resp = gin.H{"ok": true, "result": gin.H{}}
	}

	e.recordInteraction(c, models.ChannelTelegram, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}
