// Package server hosts the HTTP API with the shared middleware chain:
// request logging, per-client rate limiting, CORS, metrics, and bearer auth.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/FACorreiaa/cardwise-api/pkg/auth"
	"github.com/FACorreiaa/cardwise-api/pkg/config"
)

// Server wraps the API http.Server.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
}

// New assembles the middleware chain around the route mux.
func New(cfg *config.Config, mux http.Handler, logger *slog.Logger) *Server {
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Server.BaseURL},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := requestLogger(logger)(mux)
	handler = auth.Middleware(cfg.Auth.JWTSecret)(handler)
	handler = metricsMiddleware(handler)
	handler = rateLimit(cfg.Server.RateLimitPerSecond, cfg.Server.RateLimitBurst, logger)(handler)
	handler = corsHandler.Handler(handler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// Start blocks serving requests until shutdown or failure.
func (s *Server) Start() error {
	s.logger.Info("http server listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
