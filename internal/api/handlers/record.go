package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/0xksdata/openclaw-honeypot/internal/api/middleware"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
	"github.com/0xksdata/openclaw-honeypot/internal/util"
)

// recordInteraction writes the ChannelInteraction row for one webhook hit.
// The response is passed in because the row records what we are about to
// send, not what a writer wrapper saw.
func (e *Env) recordInteraction(c *gin.Context, channel string, senderID, messageText *string, code int, responseBody string) {
	body := c.GetString(middleware.CtxBody)
	e.Recorder.RecordChannelInteraction(&models.ChannelInteraction{
		Channel:      channel,
		Endpoint:     c.Request.URL.Path,
		Method:       c.Request.Method,
		Headers:      util.SerializeHeaders(c.Request.Header),
		Payload:      body,
		PayloadSize:  len(body),
		SenderID:     senderID,
		MessageText:  messageText,
		SourceIP:     c.GetString(middleware.CtxClientIP),
		ResponseCode: code,
		ResponseBody: responseBody,
		Suspicious:   c.GetBool(middleware.CtxSuspicious),
		Reasons:      c.GetString(middleware.CtxReasons),
	})
}

// bodyObject decodes the captured request body as a JSON object. Returns nil
// for anything else; extraction is best-effort by contract.
func bodyObject(c *gin.Context) map[string]interface{} {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(c.GetString(middleware.CtxBody)), &obj); err != nil {
		return nil
	}
	return obj
}

// dig walks a path of object keys and returns the string at the leaf.
func dig(obj map[string]interface{}, path ...string) *string {
	cur := obj
	for i, key := range path {
		if cur == nil {
			return nil
		}
		val, ok := cur[key]
		if !ok {
			return nil
		}
		if i == len(path)-1 {
			switch v := val.(type) {
			case string:
				return &v
			case float64:
				s := strconv.FormatFloat(v, 'f', -1, 64)
				return &s
			}
			return nil
		}
		cur, _ = val.(map[string]interface{})
	}
	return nil
}

func marshalJSON(v interface{}) string {
	data, _ := json.Marshal(v)
	return string(data)
}
