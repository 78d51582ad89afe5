// Package models provides the models command, which assembles the model
// catalog for a profile.
package models

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/chatmodels"
	"github.com/agentstation/chatmodels/cmd/application"
	"github.com/agentstation/chatmodels/internal/cmd/output"
	"github.com/agentstation/chatmodels/pkg/catalogs"
	"github.com/agentstation/chatmodels/pkg/errors"
	"github.com/agentstation/chatmodels/pkg/profile"
)

// Source selectors accepted by --source.
const (
	SourceAll        = "all"
	SourceHosted     = "hosted"
	SourceOllama     = "ollama"
	SourceOpenRouter = "openrouter"
)

// Flags holds the models command flags.
type Flags struct {
	Profile  string
	UseAzure bool
	Keys     []string
	Source   string
}

// NewCommand creates the models command.
func NewCommand(app application.Application) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "models",
		GroupID: "core",
		Short:   "Assemble the model catalog for a profile",
		Long: `Models assembles the chat model catalog a profile can pick from.

Hosted models are listed for providers the profile holds a key for, or that
the deployment covers with a server-side key. Ollama and OpenRouter models are
fetched live; a source that cannot be reached is skipped.`,
		Example: `  chatmodels models
  chatmodels models --profile profile.yaml
  chatmodels models --use-azure --key azure=$AZURE_OPENAI_API_KEY
  chatmodels models --source ollama -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Profile, "profile", "p", "", "profile file (YAML or JSON)")
	cmd.Flags().BoolVar(&flags.UseAzure, "use-azure", false, "route OpenAI models through Azure OpenAI")
	cmd.Flags().StringArrayVar(&flags.Keys, "key", nil, "provider credential as provider=key (repeatable)")
	cmd.Flags().StringVarP(&flags.Source, "source", "s", SourceAll, "source: all, hosted, ollama, openrouter")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *Flags) error {
	format, err := output.Resolve(app.OutputFormat())
	if err != nil {
		return err
	}

	p, err := BuildProfile(flags)
	if err != nil {
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	var (
		models []catalogs.LLM
		ok     bool
		raw    any
	)

	switch strings.ToLower(flags.Source) {
	case SourceAll, "":
		result := client.Catalog(ctx, p)
		for _, s := range result.Sources {
			if !s.Available {
				app.Logger().Warn().Str("source", s.Source).Msg("Source unavailable, catalog is partial")
			}
		}
		models, ok, raw = result.Models, true, result
	case SourceHosted:
		var hosted chatmodels.HostedModels
		hosted, ok = client.HostedModels(ctx, p)
		models, raw = hosted.Models, hosted
	case SourceOllama:
		models, ok = client.OllamaModels(ctx)
		raw = models
	case SourceOpenRouter:
		models, ok = client.OpenRouterModels(ctx)
		raw = models
	default:
		return errors.NewValidationError("source", flags.Source, "must be one of: all, hosted, ollama, openrouter")
	}

	if !ok {
		return fmt.Errorf("%s models are unavailable", flags.Source)
	}

	models = append([]catalogs.LLM(nil), models...)
	output.SortModels(models)

	return output.Write(w, format, raw, func(wide bool) output.Data {
		return output.ModelsToTableData(models, wide)
	})
}

// BuildProfile loads the profile file, if any, then applies flag overrides.
func BuildProfile(flags *Flags) (*profile.Profile, error) {
	p := &profile.Profile{}
	if flags.Profile != "" {
		loaded, err := profile.Load(flags.Profile)
		if err != nil {
			return nil, err
		}
		p = loaded
	}

	if flags.UseAzure {
		p.UseAzureOpenAI = true
	}

	for _, kv := range flags.Keys {
		name, key, found := strings.Cut(kv, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, errors.NewValidationError("key", kv, "expected provider=key")
		}
		provider, err := catalogs.ParseModelProvider(name)
		if err != nil {
			return nil, err
		}
		if err := p.SetCredential(provider, strings.TrimSpace(key)); err != nil {
			return nil, err
		}
	}

	return p, nil
}
