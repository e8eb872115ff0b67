package handlers

import (
	"time"

	"github.com/0xksdata/openclaw-honeypot/internal/config"
	"github.com/0xksdata/openclaw-honeypot/internal/gateway"
	"github.com/0xksdata/openclaw-honeypot/internal/services"
)

// Env bundles the dependencies every impersonated surface needs.
type Env struct {
	Cfg      config.Config
	Recorder *services.Recorder
	Sessions *services.Sessions
	Hub      *gateway.Hub

	startedAt time.Time
}

// NewEnv returns a handler environment.
func NewEnv(cfg config.Config, recorder *services.Recorder, sessions *services.Sessions, hub *gateway.Hub) *Env {
	return &Env{
		Cfg:       cfg,
		Recorder:  recorder,
		Sessions:  sessions,
		Hub:       hub,
		startedAt: time.Now(),
	}
}

// Uptime reports seconds since boot.
func (e *Env) Uptime() int64 {
	return int64(time.Since(e.startedAt).Seconds())
}
