package handlers

import (
	"net/http"

	"github.com/agentstation/chatmodels/internal/server/response"
	"github.com/agentstation/chatmodels/internal/sources/ollama"
	"github.com/agentstation/chatmodels/internal/sources/openrouter"
	"github.com/agentstation/chatmodels/pkg/catalogs"
)

// HandleSourceModels handles GET /api/models/{source} for the live sources.
// An unavailable source answers 503; the reason is in the server log.
func (h *Handlers) HandleSourceModels(w http.ResponseWriter, r *http.Request, source string) {
	var (
		models []catalogs.LLM
		ok     bool
	)

	switch source {
	case ollama.Source:
		models, ok = h.catalog.OllamaModels(r.Context())
	case openrouter.Source:
		models, ok = h.catalog.OpenRouterModels(r.Context())
	default:
		response.NotFound(w, "Unknown model source", "Supported sources: ollama, openrouter")
		return
	}

	if !ok {
		response.ServiceUnavailable(w, source+" models are not available")
		return
	}

	response.OK(w, map[string]any{
		"source": source,
		"models": models,
		"count":  len(models),
	})
}
