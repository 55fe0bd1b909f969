// Package rest exposes the tool registry and tool invocation surface
// over HTTP/JSON, per spec §6.2.
package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dataforge/gateway/internal/monitoring"
	"github.com/dataforge/gateway/internal/tools"
)

// Server wires the chi router over the tool registry and the
// monitoring collaborators the middleware chain depends on.
type Server struct {
	registry      *tools.Registry
	requestLogger *monitoring.RequestLogger
	alerts        *monitoring.AlertManager
	metrics       *monitoring.MetricsCollector
	logger        *monitoring.Logger

	httpServer *http.Server
	router     chi.Router
}

// Config holds the ambient HTTP server settings.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	MetricsPath  string
}

// NewServer builds a Server and its routed handler. promRegistry is
// shared with any other metrics consumer in the process (e.g. a future
// gRPC transport); pass prometheus.NewRegistry() if none exists yet.
func NewServer(cfg Config, registry *tools.Registry, requestLogger *monitoring.RequestLogger, alerts *monitoring.AlertManager, metrics *monitoring.MetricsCollector, promRegistry *prometheus.Registry, logger *monitoring.Logger) *Server {
	s := &Server{
		registry:      registry,
		requestLogger: requestLogger,
		alerts:        alerts,
		metrics:       metrics,
		logger:        logger,
	}

	r := chi.NewRouter()
	r.Use(s.panicRecovery)
	r.Use(s.loggingMiddleware)
	r.Use(securityHeaders)
	r.Use(corsMiddleware())

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleRoot)
	r.Get("/tools", s.handleToolsList)
	r.Get("/tools/registry", s.handleToolsRegistry)
	r.Get("/tools/{name}", s.handleToolDescribe)
	r.Post("/tools/{name}", s.handleToolInvoke)

	metricsPath := cfg.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}
	if promRegistry != nil {
		r.Handle(metricsPath, promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	s.router = r
	s.httpServer = &http.Server{
		Addr:         addr(cfg),
		Handler:      r,
		ReadTimeout:  nonZero(cfg.ReadTimeout, 30*time.Second),
		WriteTimeout: nonZero(cfg.WriteTimeout, 30*time.Second),
	}
	return s
}

// ListenAndServe blocks serving HTTP until the server is shut down.
func (s *Server) ListenAndServe() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("rest server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within ctx's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func addr(cfg Config) string {
	host := cfg.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Port
	if port == 0 {
		port = 8000
	}
	return host + ":" + strconv.Itoa(port)
}

func nonZero(d, fallback time.Duration) time.Duration {
	if d == 0 {
		return fallback
	}
	return d
}
