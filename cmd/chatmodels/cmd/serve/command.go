// Package serve provides the serve command, which runs the key-availability
// and catalog HTTP API.
package serve

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/chatmodels/cmd/application"
	"github.com/agentstation/chatmodels/internal/server"
)

// NewCommand creates the serve command.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		GroupID: "core",
		Short:   "Serve the key-availability and catalog API",
		Long: `Serve starts the HTTP API that chat front ends read.

Endpoints:
  GET  /api/keys                key availability: {"isUsingEnvKeyMap": {...}}
  POST /api/catalog             assemble the catalog for a posted profile
  GET  /api/providers           provider registry
  GET  /api/models/{source}     ollama or openrouter models
  GET  /health                  health check (never authenticated)
  GET  /metrics                 Prometheus metrics

Server-side keys are read from the provider variables (OPENAI_API_KEY,
AZURE_OPENAI_API_KEY, ...). Setting server_api_key enables authentication.`,
		Example: `  chatmodels serve
  chatmodels serve --port 3000 --cors-origins https://chat.example.com
  chatmodels serve --rate-limit 0 --metrics=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := Config(cmd, app.ServerConfig())
			if err != nil {
				return err
			}
			srv, err := NewServer(app, cfg)
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	defaults := server.DefaultConfig()
	cmd.Flags().IntP("port", "p", defaults.Port, "Server port")
	cmd.Flags().String("host", defaults.Host, "Bind address")
	cmd.Flags().Bool("cors", defaults.CORSEnabled, "Enable CORS")
	cmd.Flags().StringSlice("cors-origins", nil, "Allowed CORS origins (comma-separated, default all)")
	cmd.Flags().String("auth-header", defaults.AuthHeader, "Authentication header name")
	cmd.Flags().Int("rate-limit", defaults.RateLimit, "Requests per minute per client (0 to disable)")
	cmd.Flags().Bool("trust-proxy", defaults.TrustProxy, "Rate limit on X-Forwarded-For (only behind a reverse proxy)")
	cmd.Flags().Duration("read-timeout", defaults.ReadTimeout, "HTTP read timeout")
	cmd.Flags().Duration("write-timeout", defaults.WriteTimeout, "HTTP write timeout")
	cmd.Flags().Duration("idle-timeout", defaults.IdleTimeout, "HTTP idle timeout")
	cmd.Flags().Bool("metrics", defaults.MetricsEnabled, "Enable metrics endpoint")

	return cmd
}

// Config applies explicitly set flags on top of base.
func Config(cmd *cobra.Command, base server.Config) (server.Config, error) {
	cfg := base
	flags := cmd.Flags()

	var err error
	set := func(name string, apply func() error) {
		if err == nil && flags.Changed(name) {
			err = apply()
		}
	}

	set("port", func() (e error) { cfg.Port, e = flags.GetInt("port"); return })
	set("host", func() (e error) { cfg.Host, e = flags.GetString("host"); return })
	set("cors", func() (e error) { cfg.CORSEnabled, e = flags.GetBool("cors"); return })
	set("cors-origins", func() (e error) { cfg.CORSOrigins, e = flags.GetStringSlice("cors-origins"); return })
	set("auth-header", func() (e error) { cfg.AuthHeader, e = flags.GetString("auth-header"); return })
	set("rate-limit", func() (e error) { cfg.RateLimit, e = flags.GetInt("rate-limit"); return })
	set("trust-proxy", func() (e error) { cfg.TrustProxy, e = flags.GetBool("trust-proxy"); return })
	set("read-timeout", func() (e error) { cfg.ReadTimeout, e = flags.GetDuration("read-timeout"); return })
	set("write-timeout", func() (e error) { cfg.WriteTimeout, e = flags.GetDuration("write-timeout"); return })
	set("idle-timeout", func() (e error) { cfg.IdleTimeout, e = flags.GetDuration("idle-timeout"); return })
	set("metrics", func() (e error) { cfg.MetricsEnabled, e = flags.GetBool("metrics"); return })

	if err != nil {
		return server.Config{}, fmt.Errorf("reading serve flags: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return server.Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

// NewServer wires the application's dependencies into an API server.
func NewServer(app application.Application, cfg server.Config) (*server.Server, error) {
	client, err := app.ServerClient()
	if err != nil {
		return nil, fmt.Errorf("creating catalog client: %w", err)
	}
	reg, err := app.Registry()
	if err != nil {
		return nil, err
	}

	return server.New(server.Deps{
		Catalog:  client,
		Registry: reg,
		EnvKeys:  app.EnvKeys,
		Metrics:  app.Metrics(),
		Logger:   app.Logger(),
	}, cfg)
}
