package server

import (
	"time"

	"github.com/agentstation/chatmodels/pkg/constants"
)

// Config holds server configuration.
type Config struct {
	// Server settings
	Host string
	Port int

	// CORS settings
	CORSEnabled bool
	CORSOrigins []string

	// Authentication settings
	AuthEnabled bool
	APIKey      string
	AuthHeader  string

	// Requests per minute per client address (0 to disable)
	RateLimit int

	// TrustProxy keys the rate limit on X-Forwarded-For; set only behind a reverse proxy
	TrustProxy bool

	// HTTP timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Features
	MetricsEnabled bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Host:            constants.DefaultServerHost,
		Port:            constants.DefaultServerPort,
		CORSEnabled:     true,
		CORSOrigins:     []string{},
		AuthEnabled:     false,
		AuthHeader:      constants.APIKeyHeader,
		RateLimit:       100,
		ReadTimeout:     constants.ServerReadTimeout,
		WriteTimeout:    constants.ServerWriteTimeout,
		IdleTimeout:     constants.ServerIdleTimeout,
		ShutdownTimeout: constants.ShutdownTimeout,
		MetricsEnabled:  true,
	}
}
