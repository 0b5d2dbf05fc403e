package commands

import (
	"context"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

const (
	keyPlaceholder = "YOUR_GEMINI_API_KEY_HERE"
	maskedKeyEdge  = 4
	keySourceNone  = "none"
)

// keyEnvVars are read in order when neither flag nor config carries a key.
var keyEnvVars = []string{"GEMINI_API_KEY", "VITE_GEMINI_API_KEY"} //nolint:gochecknoglobals // fixed lookup order

// GenerateOptions are the caller-supplied inputs of one generation.
type GenerateOptions struct {
	Prompt string `json:"prompt"`
	APIKey string `json:"api_key,omitempty"`
	Proxy  string `json:"proxy,omitempty"`
	Model  string `json:"model,omitempty"`
}

// Generate is the interface for the generate command.
type Generate interface {
	Execute(ctx context.Context, settings *entities.Settings, opts GenerateOptions) (string, error)
	KeySource(settings *entities.Settings) string
}

// GenerateCommand sends a prompt to the hosted generation API.
type GenerateCommand struct {
	generator repositories.GeneratorRepository
}

// NewGenerateCommand creates a new GenerateCommand.
func NewGenerateCommand(generator repositories.GeneratorRepository) *GenerateCommand {
	return &GenerateCommand{generator: generator}
}

// Execute resolves the key, proxy and model, then calls the generator.
func (it *GenerateCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts GenerateOptions,
) (string, error) {
	if settings == nil {
		settings = entities.DefaultSettings()
	}
	if strings.TrimSpace(opts.Prompt) == "" {
		return "", &entities.ConfigurationError{Setting: "prompt", Message: "prompt must not be empty"}
	}

	key, _ := resolveAPIKey(opts.APIKey, settings.Generator.APIKey)
	if key == "" {
		return "", &entities.ConfigurationError{
			Setting: "api_key",
			Message: "Gemini API key is missing; pass --api-key, set generator.api_key or export GEMINI_API_KEY",
		}
	}

	proxy := strings.TrimSpace(opts.Proxy)
	if proxy == "" {
		proxy = strings.TrimSpace(settings.Generator.Proxy)
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = settings.Generator.Model
	}
	if model == "" {
		model = entities.DefaultGeneratorModel
	}

	logger.Infof("Calling %s with key %s", model, maskKey(key))
	if proxy != "" {
		logger.Infof("Using proxy %s", proxy)
	}

	return it.generator.Generate(ctx, entities.GenerationRequest{
		Prompt:  opts.Prompt,
		APIKey:  key,
		Model:   model,
		Proxy:   proxy,
		Timeout: settings.Ingest.ClientTimeout,
	})
}

// KeySource describes where the default key comes from without revealing it.
func (it *GenerateCommand) KeySource(settings *entities.Settings) string {
	configured := ""
	if settings != nil {
		configured = settings.Generator.APIKey
	}
	key, source := resolveAPIKey("", configured)
	if key == "" {
		return keySourceNone
	}
	return source + ":" + maskKey(key)
}

// resolveAPIKey picks the first usable key: explicit, configured, then the
// environment. It also reports which of those it used.
func resolveAPIKey(explicit, configured string) (string, string) {
	if k := usableKey(explicit); k != "" {
		return k, "flag"
	}
	if k := usableKey(configured); k != "" {
		return k, "config"
	}
	for _, name := range keyEnvVars {
		if k := usableKey(os.Getenv(name)); k != "" {
			return k, "env"
		}
	}
	return "", keySourceNone
}

func usableKey(raw string) string {
	k := strings.TrimSpace(raw)
	if k == keyPlaceholder {
		return ""
	}
	return k
}

// maskKey keeps the first and last four characters of a key.
func maskKey(key string) string {
	head := key[:min(maskedKeyEdge, len(key))]
	tail := key[max(0, len(key)-maskedKeyEdge):]
	return head + "..." + tail
}
