package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/citanz/dashboard/backend/internal/config"
)

// Server owns the dashboard HTTP listener.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        config.HTTPConfig
	source     string

	mu       sync.Mutex
	listener net.Listener
}

// New constructs a Server serving handler. source names the record source the
// dashboard reads from and is reported in lifecycle logs.
func New(logger *slog.Logger, cfg config.HTTPConfig, handler http.Handler, source string) *Server {
	httpServer := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprint(cfg.Port)),
		Handler:           handler,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		logger:     logger.With("component", "http", "source", source),
		cfg:        cfg,
		source:     source,
	}
}

// Addr reports the bound address once listening, else the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Start listens on the configured address and serves until Shutdown.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves the dashboard on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	s.logger.Info("dashboard api listening",
		"addr", ln.Addr().String(),
		"api_base", s.cfg.APIBase,
		"metrics", s.cfg.MetricsEnabled,
	)
	err := s.httpServer.Serve(ln)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight dashboard
// requests, including exports, until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	start := time.Now()
	s.logger.Info("dashboard api shutting down", "api_base", s.cfg.APIBase)
	err := s.httpServer.Shutdown(ctx)
	s.logger.Info("dashboard api stopped", "drained_in", time.Since(start), "error", err)
	return err
}
