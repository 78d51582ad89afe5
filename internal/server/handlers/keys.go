package handlers

import (
	"net/http"

	"github.com/agentstation/chatmodels/internal/server/response"
	"github.com/agentstation/chatmodels/pkg/catalogs"
)

// KeysResponse is the body of GET /api/keys.
type KeysResponse struct {
	IsUsingEnvKeyMap catalogs.EnvKeyMap `json:"isUsingEnvKeyMap"`
}

// HandleKeys handles GET /api/keys.
// The body is a bare object, not the data/error envelope, because catalog
// clients decode isUsingEnvKeyMap at the top level.
func (h *Handlers) HandleKeys(w http.ResponseWriter, _ *http.Request) {
	envKeyMap := h.envKeys()
	if envKeyMap == nil {
		envKeyMap = catalogs.EnvKeyMap{}
	}
	response.Raw(w, http.StatusOK, KeysResponse{IsUsingEnvKeyMap: envKeyMap})
}
