package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

func (e *Env) discordExtract(c *gin.Context) (senderID, messageText *string) {
	if obj := bodyObject(c); obj != nil {
		senderID = dig(obj, "user", "id")
		if senderID == nil {
			senderID = dig(obj, "member", "user", "id")
		}
		messageText = dig(obj, "data", "content")
		if messageText == nil {
			messageText = dig(obj, "content")
		}
	}
	return
}

// DiscordWebhook answers the gateway ping with a type-1 PONG.
func (e *Env) DiscordWebhook(c *gin.Context) {
	senderID, messageText := e.discordExtract(c)
	resp := gin.H{"type": 1}
	e.recordInteraction(c, models.ChannelDiscord, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}

// DiscordExecuteWebhook mimics the webhook-execute endpoint: 204, no body.
func (e *Env) DiscordExecuteWebhook(c *gin.Context) {
	senderID, messageText := e.discordExtract(c)
	e.recordInteraction(c, models.ChannelDiscord, senderID, messageText, http.StatusNoContent, "")
	c.Status(http.StatusNoContent)
}

// DiscordInteractions echoes pings and acknowledges everything else with a
// type-4 channel message, like a real interactions endpoint.
func (e *Env) DiscordInteractions(c *gin.Context) {
	senderID, messageText := e.discordExtract(c)

	resp := gin.H{"type": 4, "data": gin.H{"content": "On it."}}
	if obj := bodyObject(c); obj != nil {
		if t, ok := obj["type"].(float64); ok && t == 1 {
			resp = gin.H{"type": 1}
		}
	}

	e.recordInteraction(c, models.ChannelDiscord, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}
