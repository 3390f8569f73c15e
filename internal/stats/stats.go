// Package stats serves prometheus metrics on a dedicated listener.
package stats

import (
	"context"
	"net/http"
	"time"

	"github.com/lafayette53/apiserver/config"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes /metrics.
type Server struct {
	server *http.Server
}

// NewServer returns a metrics server listening on cfg.ListenAddr.
func NewServer(cfg config.StatsConfig) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &Server{
		server: &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
		},
	}
}

// Handler returns the metrics handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe starts the server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
