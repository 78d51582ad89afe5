package handlers

import (
	"net/http"

	"github.com/agentstation/chatmodels/internal/envkeys"
	"github.com/agentstation/chatmodels/internal/server/response"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/profile"
)

// ProviderInfo describes one registry provider.
type ProviderInfo struct {
	ID              catalogs.ModelProvider `json:"id"`
	Name            string                 `json:"name"`
	CredentialField string                 `json:"credentialField,omitempty"`
	EnvVariable     string                 `json:"envVariable,omitempty"`
	EnvKey          bool                   `json:"envKey"`
	Models          []catalogs.LLM         `json:"models"`
}

// HandleListProviders handles GET /api/providers.
func (h *Handlers) HandleListProviders(w http.ResponseWriter, _ *http.Request) {
	envKeyMap := h.envKeys()

	providers := h.registry.Providers()
	out := make([]ProviderInfo, 0, len(providers))
	for _, p := range providers {
		models, _ := h.registry.Lookup(p)
		field, _ := profile.CredentialField(p)
		variable, _ := envkeys.Variable(p)
		out = append(out, ProviderInfo{
			ID:              p,
			Name:            p.DisplayName(),
			CredentialField: field,
			EnvVariable:     variable,
			EnvKey:          envKeyMap.Enabled(p),
			Models:          models,
		})
	}

	response.OK(w, map[string]any{
		"providers": out,
		"count":     len(out),
	})
}
