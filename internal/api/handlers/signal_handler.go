package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/models"
)

func (e *Env) signalExtract(c *gin.Context) (senderID, messageText *string) {
	if obj := bodyObject(c); obj != nil {
		senderID = dig(obj, "source")
		messageText = dig(obj, "dataMessage", "message")
		if messageText == nil {
			messageText = dig(obj, "envelope", "dataMessage", "message")
		}
	}
	return
}

// SignalWebhook accepts signal-cli style callbacks.
func (e *Env) SignalWebhook(c *gin.Context) {
	senderID, messageText := e.signalExtract(c)
	resp := gin.H{"ok": true}
	e.recordInteraction(c, models.ChannelSignal, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}

// SignalSend mimics signal-cli's REST send endpoint.
func (e *Env) SignalSend(c *gin.Context) {
	senderID, messageText := e.signalExtract(c)
	resp := gin.H{"timestamp": time.Now().UnixMilli()}
	e.recordInteraction(c, models.ChannelSignal, senderID, messageText, http.StatusOK, marshalJSON(resp))
	c.JSON(http.StatusOK, resp)
}
