package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/agentstation/chatmodels/internal/server/response"
	"github.com/agentstation/chatmodels/pkg/constants"
	chatErrors "github.com/agentstation/chatmodels/pkg/errors"
	"github.com/agentstation/chatmodels/pkg/logging"
	"github.com/agentstation/chatmodels/pkg/profile"
)

// HandleCatalog handles POST /api/catalog.
// The body is a profile record; unknown fields are ignored so database rows
// can be posted as-is. An empty body is an empty profile.
func (h *Handlers) HandleCatalog(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProfile(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.PayloadTooLarge(w, "Profile must be at most 1MB")
			return
		}
		response.ErrorFromType(w, err)
		return
	}

	result := h.catalog.Catalog(r.Context(), p)

	logging.FromContext(r.Context()).Debug().
		Int("models", len(result.Models)).
		Msg("Catalog assembled")

	response.OK(w, result)
}

func decodeProfile(w http.ResponseWriter, r *http.Request) (*profile.Profile, error) {
	body := http.MaxBytesReader(w, r.Body, constants.MaxRequestBodySize)
	defer func() { _ = body.Close() }()

	var p profile.Profile
	if err := json.NewDecoder(body).Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return &p, nil
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, err
		}
		return nil, chatErrors.WrapParse("json", "profile", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
