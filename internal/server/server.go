// Package server exposes the match engine over websockets: clients create or
// join matches, submit actions, and receive per-viewer state views after every
// change.
package server

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/invokesim/invoke-server-go/internal/config"
	"github.com/invokesim/invoke-server-go/internal/game"
)

// Server is the websocket front of the match engine.
type Server struct {
	cfg    config.ServerConfig
	engine game.Engine
	logger *zap.Logger
	hub    *Hub
	http   *http.Server
}

// New creates a server on the given engine.
func New(cfg config.ServerConfig, engine game.Engine, logger *zap.Logger) *Server {
	s := &Server{
		cfg:    cfg,
		engine: engine,
		logger: logger,
	}
	s.hub = newHub(engine, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.http = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return s
}

// Start runs the hub and the HTTP listener, blocking until the listener
// stops.
func (s *Server) Start() error {
	go s.hub.run()

	if s.logger != nil {
		s.logger.Info("websocket server listening", zap.String("address", s.cfg.Address))
	}
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
