package transport

import "net/http"

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) {}

// BearerAuth sends the key as an Authorization bearer token.
type BearerAuth struct {
	Key string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) {
	if a.Key == "" {
		return
	}
	req.Header.Set("Authorization", "Bearer "+a.Key)
}

// HeaderAuth sends the key verbatim in a custom header.
type HeaderAuth struct {
	Header string
	Key    string
}

// Apply implements the Authenticator interface for HeaderAuth.
func (a *HeaderAuth) Apply(req *http.Request) {
	if a.Key == "" || a.Header == "" {
		return
	}
	req.Header.Set(a.Header, a.Key)
}
