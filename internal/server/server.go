package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/0xksdata/openclaw-honeypot/internal/api/routes"
	"github.com/0xksdata/openclaw-honeypot/internal/config"
	"github.com/0xksdata/openclaw-honeypot/internal/gateway"
	"github.com/0xksdata/openclaw-honeypot/internal/geoip"
	"github.com/0xksdata/openclaw-honeypot/internal/services"
)

// ShutdownTimeout bounds how long outstanding requests may run after a
// signal before the process forces its way out.
const ShutdownTimeout = 10 * time.Second

// Server wraps the HTTP engine and shared dependencies for easier testing.
type Server struct {
	Engine  *gin.Engine
	Gateway *gateway.Gateway
	cfg     config.Config
}

// New wires up the deception surface: router, gateway, capture pipeline.
func New(db *gorm.DB, cfg config.Config) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	recorder := services.NewRecorder(db)
	sessions := services.NewSessions(db)
	alerts := services.NewAlerts(cfg.AlertWebhookURL)
	gw := gateway.New(cfg, recorder, sessions, alerts)

	router := gin.New()
	if err := routes.Register(router, db, cfg, gw, recorder, sessions, alerts, geoip.Noop{}); err != nil {
		return nil, fmt.Errorf("register routes: %w", err)
	}

	return &Server{Engine: router, Gateway: gw, cfg: cfg}, nil
}

// Run starts the listener and blocks until ctx is cancelled, then drains
// HTTP for up to ShutdownTimeout and tears down every WebSocket.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr(),
		Handler: s.Engine,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()

		err := srv.Shutdown(shutdownCtx)
		s.Gateway.Shutdown()
		if err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
