// Package envkeys detects which providers have a deployment-wide default
// credential configured in the server environment.
package envkeys

import (
	"os"
	"strings"

	"github.com/agentstation/chatmodels/pkg/catalogs"
)

// variables maps each provider to the environment variable holding its
// server-side key. Providers without an entry are never reported.
var variables = map[catalogs.ModelProvider]string{
	catalogs.ProviderOpenAI:     "OPENAI_API_KEY",
	catalogs.ProviderAzure:      "AZURE_OPENAI_API_KEY",
	catalogs.ProviderAnthropic:  "ANTHROPIC_API_KEY",
	catalogs.ProviderGoogle:     "GOOGLE_GEMINI_API_KEY",
	catalogs.ProviderMistral:    "MISTRAL_API_KEY",
	catalogs.ProviderGroq:       "GROQ_API_KEY",
	catalogs.ProviderPerplexity: "PERPLEXITY_API_KEY",
	catalogs.ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Variable returns the environment variable name for provider.
func Variable(provider catalogs.ModelProvider) (string, bool) {
	name, ok := variables[provider]
	return name, ok
}

// Detect reports, for every provider with a known variable, whether that
// variable holds a non-blank value.
func Detect(lookup LookupFunc) catalogs.EnvKeyMap {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	out := make(catalogs.EnvKeyMap, len(variables))
	for _, provider := range catalogs.Providers() {
		name, ok := variables[provider]
		if !ok {
			continue
		}
		value, set := lookup(name)
		out[provider] = set && strings.TrimSpace(value) != ""
	}
	return out
}

// FromEnv runs Detect against the process environment.
func FromEnv() catalogs.EnvKeyMap {
	return Detect(os.LookupEnv)
}
