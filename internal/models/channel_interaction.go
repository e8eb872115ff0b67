package models

import (
	"time"
)

// Impersonated third-party platform tags.
const (
	ChannelWhatsApp = "whatsapp"
	ChannelTelegram = "telegram"
	ChannelDiscord  = "discord"
	ChannelSlack    = "slack"
	ChannelSignal   = "signal"
	ChannelHooks    = "hooks"
	ChannelCustom   = "custom"
)

// ChannelInteraction records one webhook hit against an impersonated
// messaging-platform surface. SenderID and MessageText are best-effort
// extractions and stay null when the payload doesn't parse.
type ChannelInteraction struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Channel      string    `json:"channel"`
	Endpoint     string    `json:"endpoint"`
	Method       string    `json:"method"`
	Headers      string    `json:"headers" gorm:"type:text"`
	Payload      string    `json:"payload" gorm:"type:text"`
	PayloadSize  int       `json:"payload_size"`
	SenderID     *string   `json:"sender_id"`
	MessageText  *string   `json:"message_text" gorm:"type:text"`
	SourceIP     string    `json:"source_ip" gorm:"index"`
	ResponseCode int       `json:"response_code"`
	ResponseBody string    `json:"response_body" gorm:"type:text"`
	Suspicious   bool      `json:"suspicious"`
	Reasons      string    `json:"reasons" gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"`
}
