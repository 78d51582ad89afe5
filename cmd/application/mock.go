package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/internal/server"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/metrics"
	"github.com/agentstation/chatmodels/pkg/registry"
)

// Mock provides a mock implementation of Application for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ClientFunc       func() (chatmodels.Client, error)
	ServerClientFunc func() (chatmodels.Client, error)
	RegistryFunc     func() (*registry.Registry, error)
	MetricsFunc      func() *metrics.Metrics
	EnvKeysFunc      func() catalogs.EnvKeyMap
	ServerConfigFunc func() server.Config
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
}

var _ Application = (*Mock)(nil)

// Client returns a client using the mock function or nil.
func (m *Mock) Client() (chatmodels.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// ServerClient returns a client using the mock function, falling back to Client.
func (m *Mock) ServerClient() (chatmodels.Client, error) {
	if m.ServerClientFunc != nil {
		return m.ServerClientFunc()
	}
	return m.Client()
}

// Registry returns a registry using the mock function or the built-in table.
func (m *Mock) Registry() (*registry.Registry, error) {
	if m.RegistryFunc != nil {
		return m.RegistryFunc()
	}
	return registry.Default(), nil
}

// Metrics returns metrics using the mock function or nil.
func (m *Mock) Metrics() *metrics.Metrics {
	if m.MetricsFunc != nil {
		return m.MetricsFunc()
	}
	return nil
}

// EnvKeys returns an EnvKeyMap using the mock function or an empty map.
func (m *Mock) EnvKeys() catalogs.EnvKeyMap {
	if m.EnvKeysFunc != nil {
		return m.EnvKeysFunc()
	}
	return catalogs.EnvKeyMap{}
}

// ServerConfig returns server settings using the mock function or defaults.
func (m *Mock) ServerConfig() server.Config {
	if m.ServerConfigFunc != nil {
		return m.ServerConfigFunc()
	}
	return server.DefaultConfig()
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Version returns "dev".
func (m *Mock) Version() string { return "dev" }

// Commit returns "unknown".
func (m *Mock) Commit() string { return "unknown" }

// Date returns "unknown".
func (m *Mock) Date() string { return "unknown" }

// BuiltBy returns "test".
func (m *Mock) BuiltBy() string { return "test" }
