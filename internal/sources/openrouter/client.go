// Package openrouter lists the models offered by the OpenRouter aggregator.
package openrouter

import (
	"context"

	"github.com/agentstation/chatmodels/internal/transport"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/constants"
	"github.com/agentstation/chatmodels/pkg/errors"
)

// Source is the name used in logs, errors and metrics.
const Source = "openrouter"

type modelsResponse struct {
	Data *[]modelData `json:"data"`
}

type modelData struct {
	ID            string `json:"id"`
	ContextLength int64  `json:"context_length"`
}

// Client queries the OpenRouter models listing.
type Client struct {
	url       string
	transport *transport.Client
}

// NewClient creates an OpenRouter client. An empty url selects the public
// endpoint; a non-empty apiKey is sent as a bearer token.
func NewClient(url, apiKey string, opts ...transport.Option) *Client {
	if url == "" {
		url = constants.DefaultOpenRouterURL
	}
	opts = append([]transport.Option{
		transport.WithAuth(&transport.BearerAuth{Key: apiKey}),
	}, opts...)
	return &Client{
		url:       url,
		transport: transport.New(Source, opts...),
	}
}

// ListModels retrieves every model OpenRouter lists.
func (c *Client) ListModels(ctx context.Context) ([]catalogs.LLM, error) {
	var result modelsResponse
	if err := c.transport.GetJSON(ctx, c.url, &result); err != nil {
		return nil, err
	}
	if result.Data == nil {
		return nil, errors.NewParseError("json", "openrouter response", "missing data", nil)
	}

	models := make([]catalogs.LLM, 0, len(*result.Data))
	for _, m := range *result.Data {
		if m.ID == "" {
			continue
		}
		models = append(models, convertToModel(m))
	}
	return models, nil
}

func convertToModel(m modelData) catalogs.LLM {
	return catalogs.LLM{
		ModelID:      m.ID,
		ModelName:    m.ID,
		Provider:     catalogs.ProviderOpenRouter,
		HostedID:     m.ID,
		PlatformLink: constants.OpenRouterPlatformLink,
		ImageInput:   false,
		MaxContext:   m.ContextLength,
	}
}
