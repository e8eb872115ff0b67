package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

// WhatsAppWebhook accepts inbound message callbacks in the Baileys shape.
func (e *Env) WhatsAppWebhook(c *gin.Context) {
	var senderID, messageText *string
	if obj := bodyObject(c); obj != nil {
		senderID = dig(obj, "key", "remoteJid")
		messageText = dig(obj, "message", "conversation")
		if messageText == nil {
			messageText = dig(obj, "message", "extendedTextMessage", "text")
		}
	}

	resp := gin.H{"ok": true, "received": true}
	e.recordInteraction(c, models.ChannelWhatsApp, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}

// WhatsAppSend pretends to queue an outbound message.
func (e *Env) WhatsAppSend(c *gin.Context) {
	var senderID, messageText *string
	if obj := bodyObject(c); obj != nil {
		senderID = dig(obj, "to")
		messageText = dig(obj, "message")
	}

	resp := gin.H{"ok": true, "messageId": uuid.New().String(), "status": "sent"}
	e.recordInteraction(c, models.ChannelWhatsApp, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}
