// Package chatmodels resolves which language models a chat user can pick.
//
// A catalog merges three sources: hosted models from the static provider
// registry, gated by the user's profile and the server's default keys;
// models installed on a local Ollama runtime; and the models listed by
// OpenRouter. Each source is best effort. A failing source is logged and
// reported as absent, and never fails the catalog as a whole.
package chatmodels

import (
	"context"
	"fmt"

	"github.com/agentstation/chatmodels/internal/hosted"
	"github.com/agentstation/chatmodels/internal/sources/keys"
	"github.com/agentstation/chatmodels/internal/sources/ollama"
	"github.com/agentstation/chatmodels/internal/sources/openrouter"
	"github.com/agentstation/chatmodels/internal/transport"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/profile"
)

// Client assembles model catalogs.
type Client interface {
	// HostedModels returns the registry models the profile can use, and the
	// EnvKeyMap they were gated on. It reports false on any failure.
	HostedModels(ctx context.Context, p *profile.Profile) (HostedModels, bool)

	// OllamaModels returns the models installed on the local runtime. It
	// reports false on failure or when no Ollama URL is configured.
	OllamaModels(ctx context.Context) ([]catalogs.LLM, bool)

	// OpenRouterModels returns the models listed by OpenRouter.
	OpenRouterModels(ctx context.Context) ([]catalogs.LLM, bool)

	// Catalog fetches every source concurrently and merges the results.
	Catalog(ctx context.Context, p *profile.Profile) *Result
}

// HostedModels is the outcome of hosted resolution.
type HostedModels struct {
	EnvKeyMap catalogs.EnvKeyMap `json:"envKeyMap" yaml:"env_key_map"`
	Models    []catalogs.LLM     `json:"hostedModels" yaml:"hosted_models"`
}

// client is the internal implementation of the Client interface.
type client struct {
	config     *config
	resolver   *hosted.Resolver
	ollama     *ollama.Client
	openRouter *openrouter.Client
}

// New creates a Client with the given options.
func New(opts ...Option) (Client, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	var transportOpts []transport.Option
	if cfg.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(cfg.httpClient))
	}

	var envKeys hosted.EnvKeyFetcher = cfg.envKeys
	if envKeys == nil {
		envKeys = keys.NewClient(cfg.keysURL, cfg.keysAPIKey, transportOpts...)
	}

	return &client{
		config:     cfg,
		resolver:   hosted.NewResolver(cfg.registry, envKeys, hosted.WithAllProvidersGated(cfg.gateAllProviders)),
		ollama:     ollama.NewClient(cfg.ollamaURL, transportOpts...),
		openRouter: openrouter.NewClient(cfg.openRouterURL, cfg.openRouterAPIKey, transportOpts...),
	}, nil
}

// HostedModels implements Client.
func (c *client) HostedModels(ctx context.Context, p *profile.Profile) (HostedModels, bool) {
	var out HostedModels
	ok := c.fetch(ctx, sourceHosted, func(ctx context.Context) (int, error) {
		result, err := c.resolver.Resolve(ctx, p)
		if err != nil {
			return 0, err
		}
		out = HostedModels{EnvKeyMap: result.EnvKeyMap, Models: result.Models}
		return len(result.Models), nil
	})
	if !ok {
		return HostedModels{}, false
	}
	return out, true
}

// OllamaModels implements Client.
func (c *client) OllamaModels(ctx context.Context) ([]catalogs.LLM, bool) {
	if !c.ollama.Configured() {
		c.logger(ctx).Debug().Str("source", ollama.Source).Msg("Ollama URL not configured, skipping")
		return nil, false
	}
	return c.listModels(ctx, ollama.Source, c.ollama.ListModels)
}

// OpenRouterModels implements Client.
func (c *client) OpenRouterModels(ctx context.Context) ([]catalogs.LLM, bool) {
	return c.listModels(ctx, openrouter.Source, c.openRouter.ListModels)
}

func (c *client) listModels(ctx context.Context, source string, list func(context.Context) ([]catalogs.LLM, error)) ([]catalogs.LLM, bool) {
	var models []catalogs.LLM
	ok := c.fetch(ctx, source, func(ctx context.Context) (int, error) {
		var err error
		models, err = list(ctx)
		return len(models), err
	})
	if !ok {
		return nil, false
	}
	return models, true
}
