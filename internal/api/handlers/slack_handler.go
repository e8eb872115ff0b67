package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

func (e *Env) slackExtract(c *gin.Context) (senderID, messageText *string) {
	if obj := bodyObject(c); obj != nil {
		senderID = dig(obj, "event", "user")
		messageText = dig(obj, "event", "text")
	}
	return
}

// SlackEvents handles the Events API surface, including the one response a
// scanner always checks first: the URL-verification challenge, echoed as a
// plain body with no JSON wrapping.
func (e *Env) SlackEvents(c *gin.Context) {
	senderID, messageText := e.slackExtract(c)

	if obj := bodyObject(c); obj != nil {
		if t, ok := obj["type"].(string); ok && t == "url_verification" {
			challenge := ""
			if ch := dig(obj, "challenge"); ch != nil {
				challenge = *ch
			}
			e.recordInteraction(c, models.ChannelSlack, senderID, messageText, http.StatusOK, challenge)
			c.String(http.StatusOK, challenge)
			return
		}
	}

	resp := gin.H{"ok": true}
	e.recordInteraction(c, models.ChannelSlack, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}

// SlackCommands acknowledges slash commands ephemerally.
func (e *Env) SlackCommands(c *gin.Context) {
	senderID, messageText := e.slackExtract(c)
	resp := gin.H{"response_type": "ephemeral", "text": "Command received"}
	e.recordInteraction(c, models.ChannelSlack, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}

// SlackInteractive acknowledges interactive payloads with a bare 200.
func (e *Env) SlackInteractive(c *gin.Context) {
	senderID, messageText := e.slackExtract(c)
	e.recordInteraction(c, models.ChannelSlack, senderID, messageText, http.StatusOK, "")
	c.Status(http.StatusOK)
}
