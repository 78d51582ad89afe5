package handlers

import (
	"net/http"
	"time"

	"github.com/agentstation/chatmodels/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "chatmodels-api",
		"uptime":  time.Since(h.startTime).Round(time.Second).String(),
	})
}
