package catalogs

import (
	"strings"

	"github.com/agentstation/chatmodels/pkg/errors"
)

// ModelProvider identifies the source of a model. The set is closed: every
// LLM carries exactly one of the constants below.
type ModelProvider string

// Model providers.
const (
	ProviderOpenAI     ModelProvider = "openai"
	ProviderAzure      ModelProvider = "azure"
	ProviderAnthropic  ModelProvider = "anthropic"
	ProviderGoogle     ModelProvider = "google"
	ProviderMistral    ModelProvider = "mistral"
	ProviderGroq       ModelProvider = "groq"
	ProviderPerplexity ModelProvider = "perplexity"
	ProviderOllama     ModelProvider = "ollama"
	ProviderOpenRouter ModelProvider = "openrouter"
	ProviderCustom     ModelProvider = "custom"
)

// providers lists the closed set in canonical order.
var providers = []ModelProvider{
	ProviderOpenAI,
	ProviderAzure,
	ProviderAnthropic,
	ProviderGoogle,
	ProviderMistral,
	ProviderGroq,
	ProviderPerplexity,
	ProviderOllama,
	ProviderOpenRouter,
	ProviderCustom,
}

// providerNames holds display names used in tables and logs.
var providerNames = map[ModelProvider]string{
	ProviderOpenAI:     "OpenAI",
	ProviderAzure:      "Azure OpenAI",
	ProviderAnthropic:  "Anthropic",
	ProviderGoogle:     "Google",
	ProviderMistral:    "Mistral",
	ProviderGroq:       "Groq",
	ProviderPerplexity: "Perplexity",
	ProviderOllama:     "Ollama",
	ProviderOpenRouter: "OpenRouter",
	ProviderCustom:     "Custom",
}

// Providers returns every known provider in canonical order.
func Providers() []ModelProvider {
	out := make([]ModelProvider, len(providers))
	copy(out, providers)
	return out
}

// String returns the string representation of a ModelProvider.
func (p ModelProvider) String() string {
	return string(p)
}

// IsValid reports whether p belongs to the closed provider set.
func (p ModelProvider) IsValid() bool {
	_, ok := providerNames[p]
	return ok
}

// DisplayName returns a human-readable provider name.
func (p ModelProvider) DisplayName() string {
	if name, ok := providerNames[p]; ok {
		return name
	}
	return string(p)
}

// ParseModelProvider converts a string to a ModelProvider, rejecting
// anything outside the closed set.
func ParseModelProvider(s string) (ModelProvider, error) {
	p := ModelProvider(strings.ToLower(strings.TrimSpace(s)))
	if !p.IsValid() {
		return "", errors.NewValidationError("provider", s, "unknown model provider")
	}
	return p, nil
}

// EnvKeyMap reports, per provider, whether the deployment has a server-side
// default credential configured.
type EnvKeyMap map[ModelProvider]bool

// Enabled reports whether p has a server-side default credential.
// A nil map or a missing entry means no.
func (m EnvKeyMap) Enabled(p ModelProvider) bool {
	return m[p]
}
