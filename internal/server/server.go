// Package server provides the HTTP server for the chatmodels API: the
// key-availability endpoint consumed by catalog clients, catalog assembly
// for posted profiles, and health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/internal/envkeys"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/metrics"
	"github.com/agentstation/chatmodels/pkg/registry"
)

// Deps are the collaborators the server delegates to.
type Deps struct {
	// Catalog assembles catalogs for posted profiles.
	Catalog chatmodels.Client
	// Registry backs the providers listing. Nil selects registry.Default().
	Registry *registry.Registry
	// EnvKeys reports server-side default keys. Nil selects envkeys.FromEnv.
	EnvKeys func() catalogs.EnvKeyMap
	// Metrics is optional.
	Metrics *metrics.Metrics
	Logger  *zerolog.Logger
}

// Server holds the HTTP server state and dependencies.
type Server struct {
	deps      Deps
	config    Config
	logger    *zerolog.Logger
	startTime time.Time
}

// New creates a new server instance with the given configuration.
func New(deps Deps, cfg Config) (*Server, error) {
	if deps.Catalog == nil {
		return nil, errors.New("server: catalog client is required")
	}
	if cfg.AuthEnabled && cfg.APIKey == "" {
		return nil, errors.New("server: auth enabled without an API key")
	}
	if deps.Registry == nil {
		deps.Registry = registry.Default()
	}
	if deps.EnvKeys == nil {
		deps.EnvKeys = envkeys.FromEnv
	}
	if deps.Logger == nil {
		nop := zerolog.Nop()
		deps.Logger = &nop
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultConfig().AuthHeader
	}

	return &Server{
		deps:      deps,
		config:    cfg,
		logger:    deps.Logger,
		startTime: time.Now(),
	}, nil
}

// Handler returns the configured http.Handler with middleware chain applied.
func (s *Server) Handler() http.Handler {
	return s.setupRouter()
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.config.Host, strconv.Itoa(s.config.Port))
}

// StartTime returns the server start time for uptime calculations.
func (s *Server) StartTime() time.Time {
	return s.startTime
}

// Run serves on the configured address until ctx is canceled, then drains
// in-flight requests within the shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info().
			Str("addr", ln.Addr().String()).
			Bool("auth", s.config.AuthEnabled).
			Bool("metrics", s.metricsEnabled()).
			Int("rate_limit", s.config.RateLimit).
			Msg("Server starting")

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server failed: %w", err)
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	timeout := s.config.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("Server stopped gracefully")
	return nil
}

func (s *Server) metricsEnabled() bool {
	return s.config.MetricsEnabled && s.deps.Metrics != nil
}
