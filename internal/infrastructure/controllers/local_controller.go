package controllers

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

const (
	localStatus   = "status"
	localModels   = "models"
	localGenerate = "generate"
	localEmbed    = "embed"
)

// LocalController handles the "local" subcommand.
type LocalController struct {
	command commands.LocalModel
}

// NewLocalController creates a new LocalController.
func NewLocalController(command commands.LocalModel) *LocalController {
	return &LocalController{command: command}
}

// GetBind returns the Cobra command metadata for the local controller.
func (it *LocalController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "local <status|models|generate|embed> [prompt]",
		Short: "Talk to a local Ollama server",
		Long: `Use a locally hosted Ollama server instead of the Gemini API.

  status            report whether the server answers
  models            list the installed models
  generate <prompt> run a non-streaming completion
  embed <text>      print the embedding vector of the text

Pass "-" as the prompt to read it from stdin. The server address comes from
--url, then local_model.base_url, then http://localhost:11434.`,
	}
}

// Execute dispatches on the action named by the first argument.
func (it *LocalController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	baseURL, _ := cmd.Flags().GetString("url")
	action := args[0]

	switch action {
	case localStatus:
		return writeOutput(cmd, it.command.Status(cmd.Context(), settings, baseURL))
	case localModels:
		models, modelsErr := it.command.Models(cmd.Context(), settings, baseURL)
		if modelsErr != nil {
			return modelsErr
		}
		return writeOutput(cmd, models)
	case localGenerate, localEmbed:
		opts, optsErr := localOptions(cmd, args[1:])
		if optsErr != nil {
			return optsErr
		}
		opts.BaseURL = baseURL

		if action == localEmbed {
			vector, embedErr := it.command.Embed(cmd.Context(), settings, opts)
			if embedErr != nil {
				return embedErr
			}
			return writeOutput(cmd, vector)
		}

		text, genErr := it.command.Generate(cmd.Context(), settings, opts)
		if genErr != nil {
			return genErr
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
		return err
	default:
		return &entities.ConfigurationError{
			Setting: "action",
			Message: fmt.Sprintf("unknown local action %q (status, models, generate, embed)", action),
		}
	}
}

// localOptions reads the prompt and the tuning flags that were set explicitly.
func localOptions(cmd *cobra.Command, args []string) (commands.LocalModelOptions, error) {
	prompt := strings.Join(args, " ")
	if prompt == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return commands.LocalModelOptions{}, fmt.Errorf("failed to read prompt from stdin: %w", err)
		}
		prompt = string(data)
	}

	opts := commands.LocalModelOptions{Prompt: prompt}
	opts.Model, _ = cmd.Flags().GetString("model")
	if cmd.Flags().Changed("num-ctx") {
		n, _ := cmd.Flags().GetInt("num-ctx")
		opts.NumCtx = &n
	}
	if cmd.Flags().Changed("num-predict") {
		n, _ := cmd.Flags().GetInt("num-predict")
		opts.NumPredict = &n
	}
	if cmd.Flags().Changed("temperature") {
		v, _ := cmd.Flags().GetFloat64("temperature")
		opts.Temperature = &v
	}
	return opts, nil
}

// AddFlags adds the local-specific flags to the given Cobra command.
func (it *LocalController) AddFlags(cmd *cobra.Command) {
	cmd.Args = cobra.MinimumNArgs(1)
	cmd.Flags().String("url", "", "Ollama base URL (overrides local_model.base_url)")
	cmd.Flags().String("model", "", "Model name (overrides local_model.model)")
	cmd.Flags().Int("num-ctx", 0, "Context window size passed as options.num_ctx")
	cmd.Flags().Int("num-predict", 0, "Maximum tokens to generate, options.num_predict")
	cmd.Flags().Float64("temperature", 0, "Sampling temperature, options.temperature")
	addOutputFlags(cmd)
}
