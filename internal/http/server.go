// Package http wires the token API and the metrics endpoint into gin servers.
package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/branca/internal/config"
	"github.com/allisson/branca/internal/metrics"
	tokenHTTP "github.com/allisson/branca/internal/token/http"
)

// ReadinessCheck reports whether the service can serve tokens.
type ReadinessCheck func(ctx context.Context) error

// Server represents the token API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
	ready  ReadinessCheck
}

// NewServer creates a new HTTP server. A nil ready check always reports ready.
func NewServer(host string, port int, logger *slog.Logger, ready ReadinessCheck) *Server {
	return &Server{
		logger: logger,
		ready:  ready,
		server: newHTTPServer(host, port),
	}
}

// SetupRouter builds the gin engine: recovery, request id, request logging,
// optional HTTP metrics, optional CORS, and the /v1/tokens routes behind the
// optional per-IP rate limit.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	tokenHandler *tokenHTTP.TokenHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.Meter(), metricsProvider.Namespace()))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	tokens := router.Group("/v1/tokens")
	if cfg.RateLimitEnabled {
		tokens.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	tokens.POST("", tokenHandler.IssueHandler)
	tokens.POST("/decode", tokenHandler.DecodeHandler)
	tokens.POST("/check", tokenHandler.CheckHandler)
	tokens.POST("/refresh", tokenHandler.RefreshHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. SetupRouter must be called first.
func (s *Server) Start(_ context.Context) error {
	if s.router == nil {
		return errors.New("router not initialized")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func (s *Server) readinessHandler(c *gin.Context) {
	if s.ready != nil {
		if err := s.ready(c.Request.Context()); err != nil {
			s.logger.Warn("readiness check failed", slog.Any("error", err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
