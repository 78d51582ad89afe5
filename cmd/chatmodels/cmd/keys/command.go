// Package keys provides the keys command, reporting which providers a
// deployment covers with server-side default keys.
package keys

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/agentstation/chatmodels/cmd/application"
	"github.com/agentstation/chatmodels/internal/cmd/output"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/profile"
)

// ErrUnavailable is returned when the key-availability endpoint cannot be read.
var ErrUnavailable = errors.New("key-availability endpoint is unavailable")

// Response mirrors the key-availability endpoint's body.
type Response struct {
	IsUsingEnvKeyMap catalogs.EnvKeyMap `json:"isUsingEnvKeyMap" yaml:"isUsingEnvKeyMap"`
}

// NewCommand creates the keys command.
func NewCommand(app application.Application) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:     "keys",
		GroupID: "core",
		Short:   "Show which providers have server-side default keys",
		Long: `Keys reports, per provider, whether the deployment supplies a default
credential. By default the configured key-availability endpoint is queried;
--local inspects this process's environment instead, which is what
"chatmodels serve" would report.`,
		Example: `  chatmodels keys
  chatmodels keys --local -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}

			var envKeys catalogs.EnvKeyMap
			if local {
				envKeys = app.EnvKeys()
			} else {
				client, err := app.Client()
				if err != nil {
					return err
				}
				hosted, ok := client.HostedModels(cmd.Context(), &profile.Profile{})
				if !ok {
					return ErrUnavailable
				}
				envKeys = hosted.EnvKeyMap
			}
			if envKeys == nil {
				envKeys = catalogs.EnvKeyMap{}
			}

			return output.Write(cmd.OutOrStdout(), format, Response{IsUsingEnvKeyMap: envKeys}, func(bool) output.Data {
				return output.EnvKeysToTableData(envKeys)
			})
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "detect keys from the local environment")

	return cmd
}
