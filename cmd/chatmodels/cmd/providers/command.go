// Package providers provides the providers command, listing the provider
// model registry.
package providers

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agentstation/chatmodels/cmd/application"
	"github.com/agentstation/chatmodels/internal/cmd/output"
	"github.com/agentstation/chatmodels/internal/envkeys"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/errors"
	"github.com/agentstation/chatmodels/pkg/profile"
)

// Info describes one registry provider.
type Info struct {
	ID              catalogs.ModelProvider `json:"id" yaml:"id"`
	Name            string                 `json:"name" yaml:"name"`
	Models          int                    `json:"models" yaml:"models"`
	CredentialField string                 `json:"credentialField,omitempty" yaml:"credential_field,omitempty"`
	EnvVariable     string                 `json:"envVariable,omitempty" yaml:"env_variable,omitempty"`
	EnvKey          bool                   `json:"envKey" yaml:"env_key"`
}

// NewCommand creates the providers command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "providers [provider-id]",
		GroupID: "core",
		Short:   "List providers in the model registry",
		Long: `Providers lists every provider in the model registry with the profile
field and environment variable that unlock it. With a provider ID, it lists
that provider's registry models instead.`,
		Example: `  chatmodels providers
  chatmodels providers azure -o wide`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.Resolve(app.OutputFormat())
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return showProvider(cmd, app, format, args[0])
			}
			return listProviders(cmd, app, format)
		},
	}
}

func listProviders(cmd *cobra.Command, app application.Application, format output.Format) error {
	reg, err := app.Registry()
	if err != nil {
		return err
	}
	infos := Describe(reg.Providers(), func(p catalogs.ModelProvider) int {
		models, _ := reg.Lookup(p)
		return len(models)
	}, app.EnvKeys())

	return output.Write(cmd.OutOrStdout(), format, infos, func(bool) output.Data {
		return toTableData(infos)
	})
}

func showProvider(cmd *cobra.Command, app application.Application, format output.Format, id string) error {
	provider, err := catalogs.ParseModelProvider(id)
	if err != nil {
		return err
	}
	reg, err := app.Registry()
	if err != nil {
		return err
	}
	models, ok := reg.Lookup(provider)
	if !ok {
		return errors.NewNotFoundError("provider", id)
	}

	return output.Write(cmd.OutOrStdout(), format, models, func(wide bool) output.Data {
		return output.ModelsToTableData(models, wide)
	})
}

// Describe builds provider descriptions in the given order.
func Describe(providers []catalogs.ModelProvider, count func(catalogs.ModelProvider) int, envKeys catalogs.EnvKeyMap) []Info {
	infos := make([]Info, 0, len(providers))
	for _, p := range providers {
		field, _ := profile.CredentialField(p)
		variable, _ := envkeys.Variable(p)
		infos = append(infos, Info{
			ID:              p,
			Name:            p.DisplayName(),
			Models:          count(p),
			CredentialField: field,
			EnvVariable:     variable,
			EnvKey:          envKeys.Enabled(p),
		})
	}
	return infos
}

func toTableData(infos []Info) output.Data {
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{
			info.ID.String(),
			info.Name,
			strconv.Itoa(info.Models),
			orDash(info.CredentialField),
			orDash(info.EnvVariable),
			output.FormatBool(info.EnvKey),
		})
	}
	return output.Data{
		Headers: []string{"ID", "Name", "Models", "Profile Field", "Env Variable", "Env Key"},
		Rows:    rows,
		ColumnAlignment: []output.Align{
			output.AlignLeft, output.AlignLeft, output.AlignRight,
			output.AlignLeft, output.AlignLeft, output.AlignCenter,
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
