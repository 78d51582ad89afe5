package chatmodels

import (
	"context"

	"github.com/agentstation/utc"
	"golang.org/x/sync/errgroup"

	"github.com/agentstation/chatmodels/internal/sources/ollama"
	"github.com/agentstation/chatmodels/internal/sources/openrouter"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/profile"
)

const sourceHosted = "hosted"

// SourceStatus reports how one source contributed to a catalog.
type SourceStatus struct {
	Source    string `json:"source" yaml:"source"`
	Available bool   `json:"available" yaml:"available"`
	Models    int    `json:"models" yaml:"models"`
}

// Result is an assembled catalog. It is built fresh on every call.
type Result struct {
	Catalog    *catalogs.Catalog  `json:"-" yaml:"-"`
	Models     []catalogs.LLM     `json:"models" yaml:"models"`
	EnvKeyMap  catalogs.EnvKeyMap `json:"envKeyMap,omitempty" yaml:"env_key_map,omitempty"`
	Sources    []SourceStatus     `json:"sources" yaml:"sources"`
	ResolvedAt utc.Time           `json:"resolvedAt" yaml:"resolved_at"`
}

// Source returns the status of the named source.
func (r *Result) Source(name string) (SourceStatus, bool) {
	for _, s := range r.Sources {
		if s.Source == name {
			return s, true
		}
	}
	return SourceStatus{}, false
}

// Catalog implements Client. Sources are fetched concurrently and merged in
// the fixed order hosted, ollama, openrouter regardless of completion order.
func (c *client) Catalog(ctx context.Context, p *profile.Profile) *Result {
	var (
		hostedModels     HostedModels
		ollamaModels     []catalogs.LLM
		openRouterModels []catalogs.LLM
		hostedOK         bool
		ollamaOK         bool
		openRouterOK     bool
	)

	var g errgroup.Group
	g.Go(func() error {
		hostedModels, hostedOK = c.HostedModels(ctx, p)
		return nil
	})
	g.Go(func() error {
		ollamaModels, ollamaOK = c.OllamaModels(ctx)
		return nil
	})
	g.Go(func() error {
		openRouterModels, openRouterOK = c.OpenRouterModels(ctx)
		return nil
	})
	_ = g.Wait()

	catalog := catalogs.NewCatalog()
	catalog.Add(hostedModels.Models...)
	catalog.Add(ollamaModels...)
	catalog.Add(openRouterModels...)

	result := &Result{
		Catalog:   catalog,
		Models:    catalog.Models(),
		EnvKeyMap: hostedModels.EnvKeyMap,
		Sources: []SourceStatus{
			{Source: sourceHosted, Available: hostedOK, Models: len(hostedModels.Models)},
			{Source: ollama.Source, Available: ollamaOK, Models: len(ollamaModels)},
			{Source: openrouter.Source, Available: openRouterOK, Models: len(openRouterModels)},
		},
		ResolvedAt: utc.Now(),
	}

	c.logger(ctx).Debug().
		Int("models", catalog.Len()).
		Bool("hosted", hostedOK).
		Bool("ollama", ollamaOK).
		Bool("openrouter", openRouterOK).
		Msg("Assembled model catalog")

	return result
}
