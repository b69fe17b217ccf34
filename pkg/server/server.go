package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"halcyon-hq/torii/pkg/config"
	"halcyon-hq/torii/pkg/gateway/handlers"
	"halcyon-hq/torii/pkg/gateway/middleware"
	"halcyon-hq/torii/pkg/telemetry/metrics"
)

// GeneratePath is the route for text generation requests.
const GeneratePath = "/api/generate"

// Dependencies carries the wired components the server routes traffic to.
type Dependencies struct {
	// Generator forwards validated payloads to the AI provider.
	Generator handlers.TextGenerator

	// Verifier validates bearer credentials. May be nil when
	// authentication is disabled.
	Verifier handlers.CredentialVerifier

	// VerifierReady reports whether the verifier holds usable material.
	// Nil when authentication is disabled.
	VerifierReady func() bool

	// Collector provides Prometheus metrics. May be nil when metrics
	// are disabled.
	Collector *metrics.Collector

	// Configured reports whether the gateway holds usable configuration:
	// the upstream credential and, when authentication is enabled, a
	// ready verifier. Defaults to deriving this from the config snapshot
	// and VerifierReady.
	Configured func() bool
}

// Server is the HTTP server for the gateway.
type Server struct {
	config       *config.Config
	deps         Dependencies
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a new gateway server.
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	if deps.Configured == nil {
		verifierReady := deps.VerifierReady
		deps.Configured = func() bool {
			if !cfg.UpstreamConfigured() {
				return false
			}
			if cfg.Auth.Enabled && verifierReady != nil && !verifierReady() {
				return false
			}
			return true
		}
	}

	return &Server{
		config:       cfg,
		deps:         deps,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Gateway.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Gateway.ReadTimeout,
		WriteTimeout:   s.config.Gateway.WriteTimeout,
		IdleTimeout:    s.config.Gateway.IdleTimeout,
		MaxHeaderBytes: s.config.Gateway.MaxHeaderBytes,
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting gateway server",
			"address", s.config.Gateway.ListenAddress,
			"auth_enabled", s.config.Auth.Enabled,
			"upstream_configured", s.deps.Configured(),
		)

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Gateway.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Gateway.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("gateway server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	generateHandler := handlers.NewGenerateHandler(
		s.deps.Generator,
		s.deps.Verifier,
		s.config.Auth.Enabled,
		s.deps.Configured,
	)
	healthHandler := handlers.NewHealthHandler()
	readyHandler := handlers.NewReadyHandler(s.deps.Configured, s.deps.VerifierReady)

	mux.Handle(GeneratePath, generateHandler)
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", readyHandler)

	if s.deps.Collector != nil && s.config.Telemetry.Metrics.Enabled {
		mux.Handle(s.config.Telemetry.Metrics.Path, s.deps.Collector.Handler())
	}

	var handler http.Handler = mux

	// Timeout middleware
	handler = middleware.TimeoutMiddleware(s.config.Gateway.WriteTimeout)(handler)

	// CORS middleware
	handler = middleware.CORSMiddleware(s.convertCORSConfig())(handler)

	// Metrics middleware
	if s.deps.Collector != nil {
		handler = middleware.MetricsMiddleware(s.deps.Collector.Request())(handler)
	}

	// Request ID middleware
	handler = middleware.RequestIDMiddleware(handler)

	// Logging middleware
	handler = middleware.LoggingMiddleware(handler)

	// Recovery middleware (outermost)
	handler = middleware.RecoveryMiddleware(handler)

	return handler
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// convertCORSConfig converts config.CORSConfig to middleware.CORSConfig.
func (s *Server) convertCORSConfig() *middleware.CORSConfig {
	return &middleware.CORSConfig{
		Enabled:          s.config.Gateway.CORS.Enabled,
		AllowedOrigins:   s.config.Gateway.CORS.AllowedOrigins,
		AllowedMethods:   s.config.Gateway.CORS.AllowedMethods,
		AllowedHeaders:   s.config.Gateway.CORS.AllowedHeaders,
		ExposedHeaders:   s.config.Gateway.CORS.ExposedHeaders,
		MaxAge:           s.config.Gateway.CORS.MaxAge,
		AllowCredentials: s.config.Gateway.CORS.AllowCredentials,
	}
}
