package controllers

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// GenerateController handles the "generate" subcommand.
type GenerateController struct {
	command commands.Generate
}

// NewGenerateController creates a new GenerateController.
func NewGenerateController(command commands.Generate) *GenerateController {
	return &GenerateController{command: command}
}

// GetBind returns the Cobra command metadata for the generate controller.
func (it *GenerateController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "generate <prompt>",
		Short: "Send a prompt to the Gemini API",
		Long: `Send a prompt to the hosted Gemini API and print the answer.
Pass "-" as the prompt to read it from stdin, e.g. to pipe a bundle in.

The key is taken from --api-key, then generator.api_key in the config,
then GEMINI_API_KEY or VITE_GEMINI_API_KEY.`,
	}
}

// Execute sends the prompt and prints the generated text.
func (it *GenerateController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if showSource, _ := cmd.Flags().GetBool("key-source"); showSource {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), it.command.KeySource(settings))
		return err
	}

	prompt := strings.Join(args, " ")
	if prompt == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return fmt.Errorf("failed to read prompt from stdin: %w", readErr)
		}
		prompt = string(data)
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	proxy, _ := cmd.Flags().GetString("proxy")
	model, _ := cmd.Flags().GetString("model")

	text, err := it.command.Execute(cmd.Context(), settings, commands.GenerateOptions{
		Prompt: prompt,
		APIKey: apiKey,
		Proxy:  proxy,
		Model:  model,
	})
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
	return err
}

// AddFlags adds the generate-specific flags to the given Cobra command.
func (it *GenerateController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().String("api-key", "", "Gemini API key")
	cmd.Flags().String("proxy", "", "HTTP or SOCKS5 proxy for this call, e.g. 127.0.0.1:7890")
	cmd.Flags().String("model", "", "Model name (default from config or gemini-2.5-flash)")
	cmd.Flags().Bool("key-source", false, "Print where the default key comes from and exit")
}
