// Package registry holds the static table of hosted models each provider
// exposes. The default table is embedded at build time and parsed once.
package registry

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/errors"
)

//go:embed llms.yaml
var defaultTable []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Registry is a read-only mapping from provider to its ordered models.
type Registry struct {
	models map[catalogs.ModelProvider][]catalogs.LLM
}

// Default returns the process-wide registry built from the embedded table.
// It panics if the embedded table is invalid, which is a build defect.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(defaultTable)
		if err != nil {
			panic(fmt.Sprintf("registry: embedded table is invalid: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Parse builds a registry from a YAML table keyed by provider. Every key must
// be a known provider and model ids must be unique within a provider.
func Parse(data []byte) (*Registry, error) {
	r := &Registry{models: make(map[catalogs.ModelProvider][]catalogs.LLM)}
	if len(bytes.TrimSpace(data)) == 0 {
		return r, nil
	}

	var raw map[string][]catalogs.LLM
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.Strict()); err != nil {
		return nil, errors.WrapParse("yaml", "registry", err)
	}

	for key, models := range raw {
		provider, err := catalogs.ParseModelProvider(key)
		if err != nil {
			return nil, err
		}

		seen := make(map[string]bool, len(models))
		for i := range models {
			m := &models[i]
			if m.ModelID == "" {
				return nil, errors.NewValidationError(fmt.Sprintf("%s[%d].model_id", provider, i), nil, "must not be empty")
			}
			if seen[m.ModelID] {
				return nil, errors.NewValidationError(fmt.Sprintf("%s[%d].model_id", provider, i), m.ModelID, "duplicate model id")
			}
			seen[m.ModelID] = true

			if m.Provider != "" && m.Provider != provider {
				return nil, errors.NewValidationError(fmt.Sprintf("%s[%d].provider", provider, i), m.Provider, "does not match table key")
			}
			m.Provider = provider
			if m.HostedID == "" {
				m.HostedID = m.ModelID
			}
			if m.ModelName == "" {
				m.ModelName = m.ModelID
			}
		}
		r.models[provider] = models
	}

	return r, nil
}

// Lookup returns fresh copies of the provider's models in table order.
// An unknown or unlisted provider yields false, never an error.
func (r *Registry) Lookup(provider catalogs.ModelProvider) ([]catalogs.LLM, bool) {
	models, ok := r.models[provider]
	if !ok {
		return nil, false
	}
	return catalogs.CloneAll(models), true
}

// Providers returns the providers present in the table, in canonical order.
func (r *Registry) Providers() []catalogs.ModelProvider {
	out := []catalogs.ModelProvider{}
	for _, p := range catalogs.Providers() {
		if _, ok := r.models[p]; ok {
			out = append(out, p)
		}
	}
	return out
}
