// Package app provides the application context and dependency management
// for the chatmodels CLI. It centralizes configuration, logging and the
// catalog client so commands receive them through application.Application.
package app

import (
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/cmd/application"
	"github.com/agentstation/chatmodels/internal/server"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/errors"
	"github.com/agentstation/chatmodels/pkg/metrics"
	"github.com/agentstation/chatmodels/pkg/registry"
)

// App represents the chatmodels application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	metricsOnce sync.Once
	metrics     *metrics.Metrics

	// Lazy-initialized, singleton
	mu       sync.RWMutex
	registry     *registry.Registry
	client       chatmodels.Client
	serverClient chatmodels.Client
}

var _ application.Application = (*App)(nil)

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.NewConfigError("app", "loading config", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// EnvKeys reports server-side default keys from the merged environment.
func (a *App) EnvKeys() catalogs.EnvKeyMap {
	return a.config.EnvKeys()
}

// Metrics returns the process metrics, created on first use.
func (a *App) Metrics() *metrics.Metrics {
	a.metricsOnce.Do(func() {
		if a.metrics == nil {
			a.metrics = metrics.New()
		}
	})
	return a.metrics
}

// ServerConfig returns HTTP server settings derived from the configuration.
// Authentication is enabled whenever a server API key is configured.
func (a *App) ServerConfig() server.Config {
	cfg := server.DefaultConfig()
	if a.config.ServerHost != "" {
		cfg.Host = a.config.ServerHost
	}
	if a.config.ServerPort > 0 {
		cfg.Port = a.config.ServerPort
	}
	cfg.APIKey = a.config.ServerAPIKey
	cfg.AuthEnabled = cfg.APIKey != ""
	cfg.MetricsEnabled = a.config.MetricsEnabled
	return cfg
}

// Registry returns the provider model registry: the file named by
// registry_file when set, otherwise the built-in table.
func (a *App) Registry() (*registry.Registry, error) {
	a.mu.RLock()
	if a.registry != nil {
		reg := a.registry
		a.mu.RUnlock()
		return reg, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadRegistry()
}

// loadRegistry must be called with a.mu held.
func (a *App) loadRegistry() (*registry.Registry, error) {
	if a.registry != nil {
		return a.registry, nil
	}
	if a.config.RegistryFile == "" {
		a.registry = registry.Default()
		return a.registry, nil
	}
	data, err := os.ReadFile(a.config.RegistryFile)
	if err != nil {
		return nil, errors.NewConfigError("registry", "reading "+a.config.RegistryFile, err)
	}
	reg, err := registry.Parse(data)
	if err != nil {
		return nil, err
	}
	a.registry = reg
	return reg, nil
}

// Client returns the catalog client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (chatmodels.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	reg, err := a.loadRegistry()
	if err != nil {
		return nil, err
	}

	opts := append(a.buildClientOptions(), chatmodels.WithRegistry(reg))
	c, err := chatmodels.New(opts...)
	if err != nil {
		return nil, err
	}

	a.client = c
	return c, nil
}

// ServerClient returns the catalog client used by the API server. It reads
// server default keys from this process's environment rather than calling
// keys_url, which would point back at the server itself.
func (a *App) ServerClient() (chatmodels.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.serverClient != nil {
		return a.serverClient, nil
	}

	reg, err := a.loadRegistry()
	if err != nil {
		return nil, err
	}

	opts := append(a.buildClientOptions(),
		chatmodels.WithRegistry(reg),
		chatmodels.WithEnvKeyFetcher(chatmodels.EnvKeyFunc(a.EnvKeys)),
	)
	c, err := chatmodels.New(opts...)
	if err != nil {
		return nil, err
	}

	a.serverClient = c
	return c, nil
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []chatmodels.Option {
	cfg := a.config
	opts := []chatmodels.Option{
		chatmodels.WithLogger(a.logger),
		chatmodels.WithMetrics(a.Metrics()),
		chatmodels.WithOllamaURL(cfg.OllamaURL),
		chatmodels.WithAllProvidersGated(cfg.GateAllProviders),
	}

	if cfg.KeysURL != "" {
		opts = append(opts, chatmodels.WithKeysURL(cfg.KeysURL))
	}
	if cfg.KeysAPIKey != "" {
		opts = append(opts, chatmodels.WithKeysAPIKey(cfg.KeysAPIKey))
	}
	if cfg.OpenRouterURL != "" {
		opts = append(opts, chatmodels.WithOpenRouterURL(cfg.OpenRouterURL))
	}
	if cfg.OpenRouterAPIKey != "" {
		opts = append(opts, chatmodels.WithOpenRouterAPIKey(cfg.OpenRouterAPIKey))
	}
	if cfg.FetchTimeout > 0 {
		opts = append(opts, chatmodels.WithFetchTimeout(cfg.FetchTimeout))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom catalog client (useful for testing). It serves
// both the CLI and the API server.
func WithClient(c chatmodels.Client) Option {
	return func(a *App) error {
		a.client = c
		a.serverClient = c
		return nil
	}
}
