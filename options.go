package chatmodels

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/constants"
	"github.com/agentstation/chatmodels/pkg/metrics"
	"github.com/agentstation/chatmodels/pkg/registry"
)

// Option is a function that configures a Client.
type Option func(*config) error

// config holds the resolved Client settings.
type config struct {
	keysURL          string
	keysAPIKey       string
	envKeys          EnvKeyFetcher
	ollamaURL        string
	openRouterURL    string
	openRouterAPIKey string
	httpClient       *http.Client
	fetchTimeout     time.Duration
	registry         *registry.Registry
	logger           *zerolog.Logger
	metrics          *metrics.Metrics
	gateAllProviders bool
}

func defaultConfig() *config {
	return &config{
		keysURL:       constants.DefaultKeysURL,
		openRouterURL: constants.DefaultOpenRouterURL,
		fetchTimeout:  constants.SourceFetchTimeout,
	}
}

// WithKeysURL sets the key-availability endpoint.
func WithKeysURL(rawURL string) Option {
	return func(c *config) error {
		if err := validateURL(rawURL); err != nil {
			return fmt.Errorf("keys url: %w", err)
		}
		c.keysURL = rawURL
		return nil
	}
}

// WithKeysAPIKey sets the key sent to the key-availability endpoint.
func WithKeysAPIKey(apiKey string) Option {
	return func(c *config) error {
		c.keysAPIKey = apiKey
		return nil
	}
}

// EnvKeyFetcher reports which providers have a server-side default key.
type EnvKeyFetcher interface {
	EnvKeyMap(ctx context.Context) (catalogs.EnvKeyMap, error)
}

// EnvKeyFunc adapts an in-process key detector to EnvKeyFetcher.
type EnvKeyFunc func() catalogs.EnvKeyMap

// EnvKeyMap implements EnvKeyFetcher.
func (f EnvKeyFunc) EnvKeyMap(context.Context) (catalogs.EnvKeyMap, error) {
	return f(), nil
}

// WithEnvKeyFetcher resolves server default keys through f instead of the
// key-availability endpoint. The server uses it to read its own environment.
func WithEnvKeyFetcher(f EnvKeyFetcher) Option {
	return func(c *config) error {
		if f == nil {
			return fmt.Errorf("env key fetcher is nil")
		}
		c.envKeys = f
		return nil
	}
}

// WithOllamaURL sets the Ollama base URL. An empty URL disables the source.
func WithOllamaURL(rawURL string) Option {
	return func(c *config) error {
		if rawURL != "" {
			if err := validateURL(rawURL); err != nil {
				return fmt.Errorf("ollama url: %w", err)
			}
		}
		c.ollamaURL = rawURL
		return nil
	}
}

// WithOpenRouterURL overrides the OpenRouter listing endpoint.
func WithOpenRouterURL(rawURL string) Option {
	return func(c *config) error {
		if err := validateURL(rawURL); err != nil {
			return fmt.Errorf("openrouter url: %w", err)
		}
		c.openRouterURL = rawURL
		return nil
	}
}

// WithOpenRouterAPIKey sets an optional bearer key for OpenRouter.
func WithOpenRouterAPIKey(apiKey string) Option {
	return func(c *config) error {
		c.openRouterAPIKey = apiKey
		return nil
	}
}

// WithHTTPClient sets the HTTP client shared by every source.
func WithHTTPClient(client *http.Client) Option {
	return func(c *config) error {
		c.httpClient = client
		return nil
	}
}

// WithFetchTimeout bounds each individual source fetch.
func WithFetchTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout <= 0 {
			return fmt.Errorf("fetch timeout must be positive, got %s", timeout)
		}
		c.fetchTimeout = timeout
		return nil
	}
}

// WithRegistry replaces the embedded provider model registry.
func WithRegistry(reg *registry.Registry) Option {
	return func(c *config) error {
		c.registry = reg
		return nil
	}
}

// WithLogger sets the logger used for fetch warnings. Without it the logger
// carried by the call context is used.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics records every source fetch in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *config) error {
		c.metrics = m
		return nil
	}
}

// WithAllProvidersGated makes every credential-backed provider a hosted
// candidate rather than only Azure.
func WithAllProvidersGated(enabled bool) Option {
	return func(c *config) error {
		c.gateAllProviders = enabled
		return nil
	}
}

func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", rawURL)
	}
	return nil
}
