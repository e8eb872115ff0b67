package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	connectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "honeypot_connections_total",
		Help: "Total number of connections by transport",
	}, []string{"transport"})
	requestsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "honeypot_requests_total",
		Help: "Total number of HTTP requests captured",
	})
	wsMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "honeypot_ws_messages_total",
		Help: "Total number of WebSocket frames by direction",
	}, []string{"direction"})
	suspiciousTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "honeypot_suspicious_total",
		Help: "Total number of classifier hits by category",
	}, []string{"category"})
	authAttemptsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "honeypot_auth_attempts_total",
		Help: "Total number of credential presentations",
	})
	liveConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "honeypot_live_connections",
		Help: "Currently open WebSocket connections",
	})
)

// Register registers Prometheus collectors. Call once at startup.
func Register(registry *prometheus.Registry) {
	registry.MustRegister(connectionsTotal, requestsTotal, wsMessagesTotal,
		suspiciousTotal, authAttemptsTotal, liveConnections)
}

// Serve exposes the registry on an operator-only address. The deception
// surface never serves /metrics: it would fingerprint the trap.
func Serve(addr string, registry *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return http.ListenAndServe(addr, mux)
}

// IncConnection increments the connection counter for a transport.
func IncConnection(transport string) { connectionsTotal.WithLabelValues(transport).Inc() }

// IncRequest increments the captured-request counter.
func IncRequest() { requestsTotal.Inc() }

// IncWSMessage increments the frame counter for a direction.
func IncWSMessage(direction string) { wsMessagesTotal.WithLabelValues(direction).Inc() }

// IncSuspicious increments the classifier-hit counter for a category.
func IncSuspicious(category string) { suspiciousTotal.WithLabelValues(category).Inc() }

// IncAuthAttempt increments the credential-presentation counter.
func IncAuthAttempt() { authAttemptsTotal.Inc() }

// SetLiveConnections sets the open-socket gauge.
func SetLiveConnections(n int) { liveConnections.Set(float64(n)) }
