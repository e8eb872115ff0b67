package services

import (
	"fmt"
	"time"

	"github.com/containrrr/shoutrrr"

	"github.com/0xksdata/openclaw-honeypot/internal/logger"
)

// Alerts pushes high-value classifier hits to an operator webhook. Delivery
// is asynchronous and best-effort; a dead webhook never slows the trap.
type Alerts struct {
	url string
}

// NewAlerts returns an Alerts sender. An empty URL disables delivery.
func NewAlerts(url string) *Alerts {
	return &Alerts{url: url}
}

// Enabled reports whether an alert destination is configured.
func (a *Alerts) Enabled() bool {
	return a.url != ""
}

// Notify fires one alert for a critical-severity hit.
func (a *Alerts) Notify(ip, category, severity, path string) {
	if a.url == "" {
		return
	}

	msg := fmt.Sprintf("honeypot: %s activity from %s\n\ncategory=%s severity=%s path=%s time=%s",
		severity, ip, category, severity, path, time.Now().Format(time.RFC3339))

	go func() {
		if err := shoutrrr.Send(a.url, msg); err != nil {
			logger.Log().WithError(err).Warn("alert webhook delivery failed")
		}
	}()
}
