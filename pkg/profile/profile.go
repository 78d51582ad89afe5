// Package profile describes the per-user credential configuration the
// catalog resolver reads. The record is owned by the application database;
// this package only decodes and inspects it.
package profile

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/errors"
)

// Profile holds the provider settings of one user.
type Profile struct {
	UseAzureOpenAI bool `json:"use_azure_openai" yaml:"use_azure_openai"`

	OpenAIAPIKey         string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`
	OpenAIOrganizationID string `json:"openai_organization_id,omitempty" yaml:"openai_organization_id,omitempty"`

	AzureOpenAIAPIKey       string `json:"azure_openai_api_key,omitempty" yaml:"azure_openai_api_key,omitempty"`
	AzureOpenAIEndpoint     string `json:"azure_openai_endpoint,omitempty" yaml:"azure_openai_endpoint,omitempty"`
	AzureOpenAI35TurboID    string `json:"azure_openai_35_turbo_id,omitempty" yaml:"azure_openai_35_turbo_id,omitempty"`
	AzureOpenAI45TurboID    string `json:"azure_openai_45_turbo_id,omitempty" yaml:"azure_openai_45_turbo_id,omitempty"`
	AzureOpenAI45VisionID   string `json:"azure_openai_45_vision_id,omitempty" yaml:"azure_openai_45_vision_id,omitempty"`
	AzureOpenAIEmbeddingsID string `json:"azure_openai_embeddings_id,omitempty" yaml:"azure_openai_embeddings_id,omitempty"`

	AnthropicAPIKey    string `json:"anthropic_api_key,omitempty" yaml:"anthropic_api_key,omitempty"`
	GoogleGeminiAPIKey string `json:"google_gemini_api_key,omitempty" yaml:"google_gemini_api_key,omitempty"`
	MistralAPIKey      string `json:"mistral_api_key,omitempty" yaml:"mistral_api_key,omitempty"`
	GroqAPIKey         string `json:"groq_api_key,omitempty" yaml:"groq_api_key,omitempty"`
	PerplexityAPIKey   string `json:"perplexity_api_key,omitempty" yaml:"perplexity_api_key,omitempty"`
	OpenRouterAPIKey   string `json:"openrouter_api_key,omitempty" yaml:"openrouter_api_key,omitempty"`
}

// credential binds a provider to the profile field holding its key.
type credential struct {
	field string
	get   func(*Profile) string
	set   func(*Profile, string)
}

// credentials covers every provider that can be unlocked by a user key.
// Providers missing here (ollama, custom) are never credential-gated.
var credentials = map[catalogs.ModelProvider]credential{
	catalogs.ProviderOpenAI: {"openai_api_key",
		func(p *Profile) string { return p.OpenAIAPIKey },
		func(p *Profile, v string) { p.OpenAIAPIKey = v }},
	catalogs.ProviderAzure: {"azure_openai_api_key",
		func(p *Profile) string { return p.AzureOpenAIAPIKey },
		func(p *Profile, v string) { p.AzureOpenAIAPIKey = v }},
	catalogs.ProviderAnthropic: {"anthropic_api_key",
		func(p *Profile) string { return p.AnthropicAPIKey },
		func(p *Profile, v string) { p.AnthropicAPIKey = v }},
	catalogs.ProviderGoogle: {"google_gemini_api_key",
		func(p *Profile) string { return p.GoogleGeminiAPIKey },
		func(p *Profile, v string) { p.GoogleGeminiAPIKey = v }},
	catalogs.ProviderMistral: {"mistral_api_key",
		func(p *Profile) string { return p.MistralAPIKey },
		func(p *Profile, v string) { p.MistralAPIKey = v }},
	catalogs.ProviderGroq: {"groq_api_key",
		func(p *Profile) string { return p.GroqAPIKey },
		func(p *Profile, v string) { p.GroqAPIKey = v }},
	catalogs.ProviderPerplexity: {"perplexity_api_key",
		func(p *Profile) string { return p.PerplexityAPIKey },
		func(p *Profile, v string) { p.PerplexityAPIKey = v }},
	catalogs.ProviderOpenRouter: {"openrouter_api_key",
		func(p *Profile) string { return p.OpenRouterAPIKey },
		func(p *Profile, v string) { p.OpenRouterAPIKey = v }},
}

// SetCredential stores key as the user's credential for provider.
func (p *Profile) SetCredential(provider catalogs.ModelProvider, key string) error {
	c, ok := credentials[provider]
	if !ok {
		return errors.NewValidationError("provider", provider, "provider takes no credential")
	}
	c.set(p, key)
	return nil
}

// Credential returns the user's key for provider, or "" if none is set or
// the provider has no credential field.
func (p *Profile) Credential(provider catalogs.ModelProvider) string {
	if p == nil {
		return ""
	}
	c, ok := credentials[provider]
	if !ok {
		return ""
	}
	return c.get(p)
}

// CredentialField returns the profile field name holding provider's key.
func CredentialField(provider catalogs.ModelProvider) (string, bool) {
	c, ok := credentials[provider]
	return c.field, ok
}

// CredentialProviders returns the credential-gated providers in canonical order.
func CredentialProviders() []catalogs.ModelProvider {
	out := []catalogs.ModelProvider{}
	for _, provider := range catalogs.Providers() {
		if _, ok := credentials[provider]; ok {
			out = append(out, provider)
		}
	}
	return out
}

// AzureDeployment returns the Azure deployment configured for a registry
// model id, or "" when the profile leaves it unset.
func (p *Profile) AzureDeployment(modelID string) string {
	if p == nil {
		return ""
	}
	switch modelID {
	case "gpt-3.5-turbo":
		return p.AzureOpenAI35TurboID
	case "gpt-4-turbo-preview":
		return p.AzureOpenAI45TurboID
	case "gpt-4-vision-preview":
		return p.AzureOpenAI45VisionID
	case "text-embedding-ada-002":
		return p.AzureOpenAIEmbeddingsID
	}
	return ""
}

// Validate checks fields whose format matters to callers.
func (p *Profile) Validate() error {
	if p.AzureOpenAIEndpoint != "" {
		u, err := url.Parse(p.AzureOpenAIEndpoint)
		if err != nil || u.Host == "" || (u.Scheme != "https" && u.Scheme != "http") {
			return errors.NewValidationError("azure_openai_endpoint", p.AzureOpenAIEndpoint, "must be an absolute http(s) URL")
		}
	}
	return nil
}

// Parse decodes a profile from YAML or JSON.
func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.UnmarshalWithOptions(data, &p, yaml.Strict()); err != nil {
		return nil, errors.WrapParse("yaml", "profile", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Load reads and decodes a profile file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("profile", path)
		}
		return nil, fmt.Errorf("reading profile %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		if pe, ok := err.(*errors.ParseError); ok {
			pe.File = path
		}
		return nil, err
	}
	return p, nil
}
