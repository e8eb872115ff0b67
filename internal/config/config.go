package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config captures runtime configuration sourced from environment variables.
type Config struct {
	Port        string
	BindAddress string
	DatabaseURL string

	LogLevel  string
	LogToFile bool
	LogPath   string

	// Identity presented on impersonated surfaces.
	FakeVersion      string
	FakeGatewayToken string

	AlertWebhookURL string
	GeoIPDatabase   string

	// Operator-only listeners; empty disables them.
	MetricsAddress string

	// Optional directory holding the fake control-UI asset bundle.
	UIDir string
}

// Load reads env vars and falls back to defaults so the honeypot can boot with zero configuration.
func Load() (Config, error) {
	cfg := Config{
		Port:             getEnv("PORT", "18789"),
		BindAddress:      getEnv("BIND_ADDRESS", "0.0.0.0"),
		DatabaseURL:      getEnv("DATABASE_URL", filepath.Join("data", "honeypot.db")),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogToFile:        strings.EqualFold(getEnv("LOG_TO_FILE", "false"), "true"),
		LogPath:          getEnv("LOG_PATH", filepath.Join("data", "logs", "honeypot.log")),
		FakeVersion:      getEnv("FAKE_VERSION", "2026.1.30"),
		FakeGatewayToken: getEnv("FAKE_GATEWAY_TOKEN", "oc_gw_4f1d2a9be7c04d53"),
		AlertWebhookURL:  getEnv("ALERT_WEBHOOK_URL", ""),
		GeoIPDatabase:    getEnv("GEOIP_DATABASE_PATH", ""),
		MetricsAddress:   getEnv("METRICS_ADDRESS", ""),
		UIDir:            getEnv("UI_DIR", ""),
	}

	if !isPostgres(cfg.DatabaseURL) {
		if err := os.MkdirAll(filepath.Dir(cfg.DatabaseURL), 0o755); err != nil {
			return Config{}, fmt.Errorf("ensure data directory: %w", err)
		}
	}

	return cfg, nil
}

// Addr returns the listen address for the deception surface.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.BindAddress, c.Port)
}

// IsPostgres reports whether DatabaseURL selects the postgres backend.
func (c Config) IsPostgres() bool {
	return isPostgres(c.DatabaseURL)
}

func isPostgres(url string) bool {
	return strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return fallback
}
