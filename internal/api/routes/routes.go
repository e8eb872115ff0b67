package routes

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xksdata/openclaw-honeypot/internal/api/handlers"
	"github.com/0xksdata/openclaw-honeypot/internal/api/middleware"
	"github.com/0xksdata/openclaw-honeypot/internal/config"
	"github.com/0xksdata/openclaw-honeypot/internal/gateway"
	"github.com/0xksdata/openclaw-honeypot/internal/geoip"
	"github.com/0xksdata/openclaw-honeypot/internal/models"
	"github.com/0xksdata/openclaw-honeypot/internal/services"
)

var genericWebhookRe = regexp.MustCompile(`^/webhook/[^/]+$`)

// Register wires up the deception surface and performs automatic migrations.
func Register(router *gin.Engine, db *gorm.DB, cfg config.Config, gw *gateway.Gateway,
	recorder *services.Recorder, sessions *services.Sessions, alerts *services.Alerts, resolver geoip.Resolver) error {

	if err := db.AutoMigrate(
		&models.Connection{},
		&models.Request{},
		&models.WSMessage{},
		&models.AuthAttempt{},
		&models.ChannelInteraction{},
		&models.SuspiciousActivity{},
		&models.AttackerSession{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	env := handlers.NewEnv(cfg, recorder, sessions, gw.Hub())

	// Upgrades are peeled off first; everything else runs the capture
	// pipeline. Recovery sits inside capture so a panicking handler still
	// gets its exchange recorded.
	router.Use(middleware.WebSocketUpgrade(gw))
	router.Use(middleware.Capture(recorder, sessions, alerts, resolver))
	router.Use(middleware.Recovery())

	router.GET("/health", env.Health)
	router.GET("/api/status", env.Status)

	router.POST("/webhook/whatsapp", env.WhatsAppWebhook)
	router.POST("/webhook/whatsapp/send", env.WhatsAppSend)

	router.POST("/webhook/discord", env.DiscordWebhook)
	router.POST("/api/webhooks/:id/:token", env.DiscordExecuteWebhook)
	router.POST("/interactions", env.DiscordInteractions)

	router.POST("/webhook/slack", env.SlackEvents)
	router.POST("/slack/events", env.SlackEvents)
	router.POST("/slack/commands", env.SlackCommands)
	router.POST("/slack/interactive", env.SlackInteractive)

	router.POST("/webhook/signal", env.SignalWebhook)
	router.POST("/v1/send", env.SignalSend)

	router.Any("/hooks/*path", env.Hooks)

	router.GET("/", env.ControlUI)
	router.GET("/assets/*path", env.StaticAsset)

	// Telegram's token lives inside the first path segment, so the whole
	// /bot* family and the generic webhook fall through to here. The prefix
	// set for 404s is load-bearing: webhook-style scanners expect JSON, UI
	// paths expect HTML.
	router.NoRoute(func(c *gin.Context) {
		path := c.Request.URL.Path
		switch {
		case strings.HasPrefix(path, "/bot"):
			env.Telegram(c)
		case c.Request.Method == http.MethodPost && genericWebhookRe.MatchString(path):
			env.GenericWebhook(c, strings.TrimPrefix(path, "/webhook/"))
		case strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/webhook/"):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not found"})
		default:
			env.ControlUI(c)
		}
	})

	return nil
}
