// Package hosted resolves which statically registered models a profile can
// use, based on its own credentials and the server's default keys.
package hosted

import (
	"context"

	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/profile"
	"github.com/agentstation/chatmodels/pkg/registry"
)

// EnvKeyFetcher reports which providers have a server-side default key.
type EnvKeyFetcher interface {
	EnvKeyMap(ctx context.Context) (catalogs.EnvKeyMap, error)
}

// Result is the outcome of a successful resolution.
type Result struct {
	EnvKeyMap catalogs.EnvKeyMap
	Models    []catalogs.LLM
}

// Resolver selects hosted models from a registry.
type Resolver struct {
	registry *registry.Registry
	keys     EnvKeyFetcher
	gateAll  bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAllProvidersGated makes every provider with a credential field a
// candidate, instead of only Azure when the profile opts into it.
func WithAllProvidersGated(enabled bool) Option {
	return func(r *Resolver) {
		r.gateAll = enabled
	}
}

// NewResolver creates a resolver. A nil registry selects registry.Default().
func NewResolver(reg *registry.Registry, keys EnvKeyFetcher, opts ...Option) *Resolver {
	if reg == nil {
		reg = registry.Default()
	}
	r := &Resolver{registry: reg, keys: keys}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve fetches the EnvKeyMap and returns the registry models of every
// candidate provider that is enabled by a profile credential or a server
// default. Models keep registry order within a provider and candidate order
// across providers.
func (r *Resolver) Resolve(ctx context.Context, p *profile.Profile) (*Result, error) {
	candidates := r.Candidates(p)

	envKeyMap, err := r.keys.EnvKeyMap(ctx)
	if err != nil {
		return nil, err
	}

	models := make([]catalogs.LLM, 0)
	for _, provider := range candidates {
		if p.Credential(provider) == "" && !envKeyMap.Enabled(provider) {
			continue
		}
		listed, ok := r.registry.Lookup(provider)
		if !ok {
			continue
		}
		if provider == catalogs.ProviderAzure {
			applyAzureDeployments(p, listed)
		}
		models = append(models, listed...)
	}

	return &Result{EnvKeyMap: envKeyMap, Models: models}, nil
}

// Candidates returns the providers considered for the profile.
func (r *Resolver) Candidates(p *profile.Profile) []catalogs.ModelProvider {
	useAzure := p != nil && p.UseAzureOpenAI

	if !r.gateAll {
		if useAzure {
			return []catalogs.ModelProvider{catalogs.ProviderAzure}
		}
		return nil
	}

	var candidates []catalogs.ModelProvider
	for _, provider := range profile.CredentialProviders() {
		if provider == catalogs.ProviderAzure && !useAzure {
			continue
		}
		candidates = append(candidates, provider)
	}
	return candidates
}

// applyAzureDeployments points HostedID at the profile's deployment names.
func applyAzureDeployments(p *profile.Profile, models []catalogs.LLM) {
	for i := range models {
		if deployment := p.AzureDeployment(models[i].ModelID); deployment != "" {
			models[i].HostedID = deployment
		}
	}
}
