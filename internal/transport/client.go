// Package transport provides the HTTP plumbing shared by every catalog
// source: authenticated GETs and JSON decoding with classified errors.
package transport

import (
	"context"
	"net/http"

	"github.com/agentstation/chatmodels/pkg/constants"
	"github.com/agentstation/chatmodels/pkg/errors"
)

// DefaultHTTPTimeout is the default timeout for HTTP requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// Doer is the subset of *http.Client used by the transport.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client performs requests on behalf of one named source.
type Client struct {
	source string
	http   Doer
	auth   Authenticator
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		if doer != nil {
			c.http = doer
		}
	}
}

// WithAuth sets the authenticator applied to every request.
func WithAuth(auth Authenticator) Option {
	return func(c *Client) {
		if auth != nil {
			c.auth = auth
		}
	}
}

// New creates a transport client for the named source.
func New(source string, opts ...Option) *Client {
	c := &Client{
		source: source,
		http:   &http.Client{Timeout: DefaultHTTPTimeout},
		auth:   &NoAuth{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Source returns the source name used in errors.
func (c *Client) Source() string {
	return c.source
}

// Get performs an authenticated GET. Failures to obtain a response are
// returned as *errors.TransportError.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.WrapTransport(c.source, url, err)
	}

	c.auth.Apply(req)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.WrapTransport(c.source, url, err)
	}
	return resp, nil
}

// GetJSON performs a GET and decodes a successful JSON body into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	return DecodeResponse(c.source, resp, target)
}
