// Package application provides the application interface for chatmodels commands.
//
// The Application interface defines the contract between the application layer and
// command implementations, enabling dependency injection and testability.
//
// Usage in Commands:
//
//	func NewCommand(app application.Application) *cobra.Command {
//	    return &cobra.Command{
//	        RunE: func(cmd *cobra.Command, args []string) error {
//	            client, err := app.Client()
//	            if err != nil {
//	                return err
//	            }
//	            result := client.Catalog(cmd.Context(), &profile.Profile{})
//	            // ... render result
//	            return nil
//	        },
//	    }
//	}
//
// Testing with Mocks:
//
//	mock := &application.Mock{
//	    ClientFunc: func() (chatmodels.Client, error) {
//	        return fakeClient, nil
//	    },
//	}
//	cmd := NewCommand(mock)
package application

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/internal/server"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/metrics"
	"github.com/agentstation/chatmodels/pkg/registry"
)

// Application provides the application interface that commands need.
// The App struct from cmd/chatmodels/app implements this interface.
//
// Thread Safety: All methods must be safe for concurrent access.
type Application interface {
	// Client returns the catalog client (lazy-initialized, cached).
	Client() (chatmodels.Client, error)

	// ServerClient returns the catalog client for the API server. Server
	// default keys come from EnvKeys instead of the key endpoint.
	ServerClient() (chatmodels.Client, error)

	// Registry returns the provider model registry in use.
	Registry() (*registry.Registry, error)

	// Metrics returns the process metrics, shared by the client and the server.
	Metrics() *metrics.Metrics

	// EnvKeys reports which providers have server-side default keys in
	// this process's environment.
	EnvKeys() catalogs.EnvKeyMap

	// ServerConfig returns the configured HTTP server settings.
	ServerConfig() server.Config

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
