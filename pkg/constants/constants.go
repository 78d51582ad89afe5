// Package constants provides shared constants used throughout the chatmodels codebase.
// This includes timeouts, default endpoints, file permissions, and other values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the transport-level ceiling for a single HTTP request
	DefaultHTTPTimeout = 30 * time.Second

	// SourceFetchTimeout is the default per-source budget during catalog assembly
	SourceFetchTimeout = 10 * time.Second

	// ShutdownTimeout is how long the server waits for in-flight requests
	ShutdownTimeout = 5 * time.Second

	// ServerReadTimeout is the HTTP server read timeout
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the HTTP server write timeout; catalog assembly
	// must fit inside it
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the HTTP server keep-alive idle timeout
	ServerIdleTimeout = 120 * time.Second
)

// Default endpoints
const (
	// DefaultKeysURL is where the key-availability endpoint is served by `chatmodels serve`
	DefaultKeysURL = "http://localhost:8080/api/keys"

	// DefaultOpenRouterURL is the public OpenRouter model listing
	DefaultOpenRouterURL = "https://openrouter.ai/api/v1/models"

	// OllamaTagsPath is appended to the configured Ollama base URL
	OllamaTagsPath = "/api/tags"

	// OllamaPlatformLink documents models discovered from a local Ollama runtime
	OllamaPlatformLink = "https://ollama.ai/library"

	// OpenRouterPlatformLink documents models discovered from OpenRouter
	OpenRouterPlatformLink = "https://openrouter.ai/docs#models"
)

// Server defaults
const (
	// DefaultServerHost is the default listen host
	DefaultServerHost = "localhost"

	// DefaultServerPort is the default listen port
	DefaultServerPort = 8080

	// APIKeyHeader carries the shared secret when server auth is enabled
	APIKeyHeader = "X-API-Key"

	// RequestIDHeader carries the per-request correlation ID
	RequestIDHeader = "X-Request-ID"

	// MaxRequestBodySize bounds profile payloads accepted by the server
	MaxRequestBodySize = 1 << 20
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)
