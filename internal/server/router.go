package server

import (
	"net/http"
	"strings"

	"github.com/agentstation/chatmodels/internal/server/handlers"
	"github.com/agentstation/chatmodels/internal/server/middleware"
	"github.com/agentstation/chatmodels/internal/server/response"
)

// setupRouter creates the HTTP handler with routes and middleware.
func (s *Server) setupRouter() http.Handler {
	mux := http.NewServeMux()

	h := handlers.New(handlers.Deps{
		Catalog:   s.deps.Catalog,
		Registry:  s.deps.Registry,
		EnvKeys:   s.deps.EnvKeys,
		Logger:    s.logger,
		StartTime: s.startTime,
	})

	s.registerRoutes(mux, h)

	return s.applyMiddleware(mux)
}

// registerRoutes registers all HTTP routes.
func (s *Server) registerRoutes(mux *http.ServeMux, h *handlers.Handlers) {
	// Favicon handler (return 204 No Content to avoid 404 logs)
	mux.HandleFunc("/favicon.ico", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Public health endpoints (no auth required)
	mux.HandleFunc("/health", h.HandleHealth)
	mux.HandleFunc("/api/health", h.HandleHealth)

	mux.HandleFunc("/api/keys", methods(map[string]http.HandlerFunc{
		http.MethodGet: h.HandleKeys,
	}))

	mux.HandleFunc("/api/catalog", methods(map[string]http.HandlerFunc{
		http.MethodPost: h.HandleCatalog,
	}))

	mux.HandleFunc("/api/providers", methods(map[string]http.HandlerFunc{
		http.MethodGet: h.HandleListProviders,
	}))

	mux.HandleFunc("/api/models/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			response.MethodNotAllowed(w, r.Method)
			return
		}
		parts := splitPath(strings.TrimPrefix(r.URL.Path, "/api/models/"))
		if len(parts) != 1 {
			response.NotFound(w, "Not found", r.URL.Path)
			return
		}
		h.HandleSourceModels(w, r, parts[0])
	})

	if s.metricsEnabled() {
		mux.Handle("/metrics", s.deps.Metrics.Handler())
	}
}

// applyMiddleware wraps handler with middleware chain.
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	cfg := s.config

	// Rate limiting (if enabled)
	if cfg.RateLimit > 0 {
		handler = middleware.RateLimit(middleware.NewRateLimiter(cfg.RateLimit, s.logger,
			middleware.TrustForwardedFor(cfg.TrustProxy)))(handler)
	}

	// Authentication (if enabled)
	if cfg.AuthEnabled {
		authConfig := middleware.DefaultAuthConfig()
		authConfig.Enabled = true
		authConfig.APIKey = cfg.APIKey
		authConfig.HeaderName = cfg.AuthHeader
		handler = middleware.Auth(authConfig, s.logger)(handler)
	}

	// CORS (if enabled)
	if cfg.CORSEnabled {
		corsConfig := middleware.DefaultCORSConfig()
		if len(cfg.CORSOrigins) > 0 {
			corsConfig.AllowedOrigins = cfg.CORSOrigins
		} else {
			corsConfig.AllowAll = true
		}
		handler = middleware.CORS(corsConfig)(handler)
	}

	// Request IDs, metrics, logging and recovery (always enabled)
	return middleware.Chain(
		middleware.Recovery(s.logger),
		middleware.RequestID(),
		middleware.Logger(s.logger),
		middleware.Metrics(s.deps.Metrics, routeLabel),
	)(handler)
}

// methods dispatches on the request method.
func methods(byMethod map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := byMethod[r.Method]; ok {
			h(w, r)
			return
		}
		response.MethodNotAllowed(w, r.Method)
	}
}

// routeLabel maps a request path to its registered route.
func routeLabel(r *http.Request) string {
	switch path := r.URL.Path; {
	case strings.HasPrefix(path, "/api/models/"):
		return "/api/models/{source}"
	case path == "/health", path == "/api/health", path == "/api/keys",
		path == "/api/catalog", path == "/api/providers", path == "/metrics":
		return path
	default:
		return "other"
	}
}

// splitPath splits a URL path into parts, removing empty strings.
func splitPath(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
