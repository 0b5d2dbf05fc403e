package commands

import (
	"context"
	"strings"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// LocalModelOptions are the caller-supplied inputs of one local model call.
// Blank fields fall back to the local_model settings.
type LocalModelOptions struct {
	BaseURL     string   `json:"-"`
	Model       string   `json:"model,omitempty"`
	Prompt      string   `json:"prompt"`
	NumCtx      *int     `json:"num_ctx,omitempty"`
	NumPredict  *int     `json:"num_predict,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
}

// LocalModel is the interface for the local model command.
type LocalModel interface {
	Status(ctx context.Context, settings *entities.Settings, baseURL string) entities.LocalModelStatus
	Models(ctx context.Context, settings *entities.Settings, baseURL string) ([]string, error)
	Generate(ctx context.Context, settings *entities.Settings, opts LocalModelOptions) (string, error)
	Embed(ctx context.Context, settings *entities.Settings, opts LocalModelOptions) ([]float32, error)
}

// LocalModelCommand drives a locally hosted model server.
type LocalModelCommand struct {
	repository repositories.LocalModelRepository
}

// NewLocalModelCommand creates a new LocalModelCommand.
func NewLocalModelCommand(repository repositories.LocalModelRepository) *LocalModelCommand {
	return &LocalModelCommand{repository: repository}
}

// Status never fails; an unreachable server is reported in the result.
func (it *LocalModelCommand) Status(
	ctx context.Context,
	settings *entities.Settings,
	baseURL string,
) entities.LocalModelStatus {
	endpoint := localEndpoint(settings, baseURL)
	status := entities.LocalModelStatus{BaseURL: endpoint.BaseURL}

	if err := it.repository.Ping(ctx, endpoint); err != nil {
		logger.Debugf("Local model server %s is unreachable: %v", endpoint.BaseURL, err)
		status.Error = err.Error()
		return status
	}
	status.Reachable = true
	return status
}

func (it *LocalModelCommand) Models(
	ctx context.Context,
	settings *entities.Settings,
	baseURL string,
) ([]string, error) {
	return it.repository.ListModels(ctx, localEndpoint(settings, baseURL))
}

func (it *LocalModelCommand) Generate(
	ctx context.Context,
	settings *entities.Settings,
	opts LocalModelOptions,
) (string, error) {
	endpoint, model, err := resolveLocalCall(settings, opts)
	if err != nil {
		return "", err
	}

	logger.Infof("Calling local model %s at %s", model, endpoint.BaseURL)
	return it.repository.Generate(ctx, entities.LocalGenerationRequest{
		Endpoint:    endpoint,
		Model:       model,
		Prompt:      opts.Prompt,
		NumCtx:      opts.NumCtx,
		NumPredict:  opts.NumPredict,
		Temperature: opts.Temperature,
	})
}

func (it *LocalModelCommand) Embed(
	ctx context.Context,
	settings *entities.Settings,
	opts LocalModelOptions,
) ([]float32, error) {
	endpoint, model, err := resolveLocalCall(settings, opts)
	if err != nil {
		return nil, err
	}

	return it.repository.Embed(ctx, entities.EmbeddingRequest{
		Endpoint: endpoint,
		Model:    model,
		Prompt:   opts.Prompt,
	})
}

func resolveLocalCall(
	settings *entities.Settings,
	opts LocalModelOptions,
) (entities.LocalModelEndpoint, string, error) {
	if settings == nil {
		settings = entities.DefaultSettings()
	}
	if strings.TrimSpace(opts.Prompt) == "" {
		return entities.LocalModelEndpoint{}, "", &entities.ConfigurationError{
			Setting: "prompt", Message: "prompt must not be empty",
		}
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = strings.TrimSpace(settings.LocalModel.Model)
	}
	if model == "" {
		return entities.LocalModelEndpoint{}, "", &entities.ConfigurationError{
			Setting: "model",
			Message: "no local model selected; pass --model or set local_model.model",
		}
	}
	return localEndpoint(settings, opts.BaseURL), model, nil
}

// localEndpoint picks the explicit address, then the configured one, then the default.
func localEndpoint(settings *entities.Settings, explicit string) entities.LocalModelEndpoint {
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	baseURL := strings.TrimSpace(explicit)
	if baseURL == "" {
		baseURL = strings.TrimSpace(settings.LocalModel.BaseURL)
	}
	if baseURL == "" {
		baseURL = entities.DefaultLocalModelURL
	}
	return entities.LocalModelEndpoint{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Timeout: settings.Ingest.ClientTimeout,
	}
}
