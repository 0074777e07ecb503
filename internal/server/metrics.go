package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// DefaultMetricsAddr is the default address for the metrics server.
	DefaultMetricsAddr = ":9090"

	metricsReadTimeout  = 10 * time.Second
	metricsWriteTimeout = 10 * time.Second
	metricsIdleTimeout  = 60 * time.Second
)

// Metrics holds the Prometheus instruments for the bridge.
type Metrics struct {
	registry *prometheus.Registry

	toolCalls      *prometheus.CounterVec
	tokenRefreshes *prometheus.CounterVec
	storeFallbacks *prometheus.CounterVec
}

// NewMetrics creates and registers all instruments on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerbridge_tool_calls_total",
			Help: "Tool invocations by tool name and outcome.",
		}, []string{"tool", "status"}),
		tokenRefreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerbridge_token_refreshes_total",
			Help: "Access-token refresh attempts by outcome.",
		}, []string{"status"}),
		storeFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sellerbridge_store_fallbacks_total",
			Help: "Durable-store failures masked by the in-process fallback, by operation.",
		}, []string{"operation"}),
	}

	registry.MustRegister(m.toolCalls, m.tokenRefreshes, m.storeFallbacks)
	return m
}

// ObserveToolCall records one tool invocation.
func (m *Metrics) ObserveToolCall(tool, status string) {
	m.toolCalls.WithLabelValues(tool, status).Inc()
}

// ObserveTokenRefresh records one refresh attempt. Matches the token
// manager's refresh hook signature.
func (m *Metrics) ObserveTokenRefresh(status string) {
	m.tokenRefreshes.WithLabelValues(status).Inc()
}

// ObserveStoreFallback records one masked durable-store failure. Matches
// the fallback store's degrade hook signature.
func (m *Metrics) ObserveStoreFallback(operation string) {
	m.storeFallbacks.WithLabelValues(operation).Inc()
}

// Handler returns the Prometheus scrape handler for these instruments.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// MetricsServer serves Prometheus metrics on a dedicated port, isolating
// them from the MCP transport.
type MetricsServer struct {
	httpServer *http.Server
	addr       string
}

// NewMetricsServer creates a metrics server exposing /metrics plus the
// health endpoints of the given checker.
func NewMetricsServer(addr string, metrics *Metrics, health *HealthChecker) *MetricsServer {
	if addr == "" {
		addr = DefaultMetricsAddr
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	if health != nil {
		health.RegisterHealthEndpoints(mux)
	}

	return &MetricsServer{
		addr: addr,
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: metricsReadTimeout,
			WriteTimeout:      metricsWriteTimeout,
			IdleTimeout:       metricsIdleTimeout,
		},
	}
}

// Start runs the metrics server; it blocks until shutdown or failure.
func (s *MetricsServer) Start() error {
	slog.Info("starting metrics server", "addr", s.addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	slog.Info("shutting down metrics server")
	return s.httpServer.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *MetricsServer) Addr() string {
	return s.addr
}
