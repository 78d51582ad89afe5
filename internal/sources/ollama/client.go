// Package ollama lists the models installed on a local Ollama runtime.
package ollama

import (
	"context"
	"strings"

	"github.com/agentstation/chatmodels/internal/transport"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/constants"
	"github.com/agentstation/chatmodels/pkg/errors"
)

// Source is the name used in logs, errors and metrics.
const Source = "ollama"

// Response structures for the Ollama tags API.
type tagsResponse struct {
	Models *[]tagModel `json:"models"`
}

type tagModel struct {
	Name string `json:"name"`
}

// Client queries an Ollama base URL.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// NewClient creates a client for the Ollama runtime at baseURL.
func NewClient(baseURL string, opts ...transport.Option) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		transport: transport.New(Source, opts...),
	}
}

// Configured reports whether a base URL was supplied.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// ListModels retrieves the installed models from {base}/api/tags.
func (c *Client) ListModels(ctx context.Context) ([]catalogs.LLM, error) {
	if !c.Configured() {
		return nil, &errors.ConfigError{
			Component: Source,
			Message:   "base URL not configured",
		}
	}

	var result tagsResponse
	if err := c.transport.GetJSON(ctx, c.baseURL+constants.OllamaTagsPath, &result); err != nil {
		return nil, err
	}
	if result.Models == nil {
		return nil, errors.NewParseError("json", "ollama response", "missing models", nil)
	}

	models := make([]catalogs.LLM, 0, len(*result.Models))
	for _, m := range *result.Models {
		if m.Name == "" {
			continue
		}
		models = append(models, convertToModel(m))
	}
	return models, nil
}

func convertToModel(m tagModel) catalogs.LLM {
	return catalogs.LLM{
		ModelID:      m.Name,
		ModelName:    m.Name,
		Provider:     catalogs.ProviderOllama,
		HostedID:     m.Name,
		PlatformLink: constants.OllamaPlatformLink,
		ImageInput:   false,
	}
}
