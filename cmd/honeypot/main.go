package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/0xksdata/openclaw-honeypot/internal/config"
	"github.com/0xksdata/openclaw-honeypot/internal/database"
	"github.com/0xksdata/openclaw-honeypot/internal/logger"
	"github.com/0xksdata/openclaw-honeypot/internal/metrics"
	"github.com/0xksdata/openclaw-honeypot/internal/server"
	"github.com/0xksdata/openclaw-honeypot/internal/services"
	"github.com/0xksdata/openclaw-honeypot/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log().Fatalf("load config: %v", err)
	}

	// Setup logging, with rotation when a file sink is requested
	var out io.Writer = os.Stdout
	if cfg.LogToFile {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err == nil {
			rotator := &lumberjack.Logger{
				Filename:   cfg.LogPath,
				MaxSize:    10, // megabytes
				MaxBackups: 3,
				MaxAge:     28, // days
				Compress:   true,
			}
			out = io.MultiWriter(os.Stdout, rotator)
		}
	}
	logger.Init(cfg.LogLevel, out)

	logger.WithFields(map[string]interface{}{
		"version":     version.Full(),
		"impersonate": version.Impersonated,
		"fake":        cfg.FakeVersion,
	}).Info("starting honeypot")

	db, err := database.Open(cfg.DatabaseURL, cfg.IsPostgres())
	if err != nil {
		logger.Log().Fatalf("connect database: %v", err)
	}

	srv, err := server.New(db, cfg)
	if err != nil {
		logger.Log().Fatalf("build server: %v", err)
	}

	if cfg.GeoIPDatabase != "" {
		logger.Log().WithField("path", cfg.GeoIPDatabase).Info("geoip database configured")
	}

	stats := services.NewStats(db)
	if err := stats.Start(); err != nil {
		logger.Log().WithError(err).Warn("stats job not scheduled")
	}
	defer stats.Stop()

	if cfg.MetricsAddress != "" {
		registry := prometheus.NewRegistry()
		metrics.Register(registry)
		go func() {
			if err := metrics.Serve(cfg.MetricsAddress, registry); err != nil {
				logger.Log().WithError(err).Error("metrics listener")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Log().WithField("addr", cfg.Addr()).Info("listening")
	if err := srv.Run(ctx); err != nil {
		logger.Log().Fatalf("server error: %v", err)
	}

	logger.Log().Info("shutdown complete")
}
