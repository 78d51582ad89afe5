// Package keys provides a client for the key-availability endpoint, which
// reports which providers have a server-side default credential.
package keys

import (
	"context"

	"github.com/agentstation/chatmodels/internal/transport"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/constants"
	"github.com/agentstation/chatmodels/pkg/errors"
)

// Source is the name used in logs, errors and metrics.
const Source = "keys"

type envKeyResponse struct {
	IsUsingEnvKeyMap *map[string]bool `json:"isUsingEnvKeyMap"`
}

// Client fetches the EnvKeyMap.
type Client struct {
	url       string
	transport *transport.Client
}

// NewClient creates a keys client. An empty url selects the default
// endpoint; a non-empty apiKey is sent in the X-API-Key header.
func NewClient(url, apiKey string, opts ...transport.Option) *Client {
	if url == "" {
		url = constants.DefaultKeysURL
	}
	opts = append([]transport.Option{
		transport.WithAuth(&transport.HeaderAuth{Header: constants.APIKeyHeader, Key: apiKey}),
	}, opts...)
	return &Client{
		url:       url,
		transport: transport.New(Source, opts...),
	}
}

// URL returns the endpoint this client queries.
func (c *Client) URL() string {
	return c.url
}

// EnvKeyMap fetches which providers are backed by a server-side key.
// Unknown provider names in the response are ignored.
func (c *Client) EnvKeyMap(ctx context.Context) (catalogs.EnvKeyMap, error) {
	var result envKeyResponse
	if err := c.transport.GetJSON(ctx, c.url, &result); err != nil {
		return nil, err
	}
	if result.IsUsingEnvKeyMap == nil {
		return nil, errors.NewParseError("json", "keys response", "missing isUsingEnvKeyMap", nil)
	}

	envKeyMap := make(catalogs.EnvKeyMap, len(*result.IsUsingEnvKeyMap))
	for name, enabled := range *result.IsUsingEnvKeyMap {
		provider := catalogs.ModelProvider(name)
		if !provider.IsValid() {
			continue
		}
		envKeyMap[provider] = enabled
	}
	return envKeyMap, nil
}
