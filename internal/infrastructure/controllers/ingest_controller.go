package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// IngestController handles the "ingest" subcommand.
type IngestController struct {
	command commands.Ingest
}

// NewIngestController creates a new IngestController.
func NewIngestController(command commands.Ingest) *IngestController {
	return &IngestController{command: command}
}

// GetBind returns the Cobra command metadata for the ingest controller.
func (it *IngestController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "ingest <owner>/<repo>",
		Short: "Build a context bundle from a hosted repository",
		Long: `Fetch the metadata, file tree, README, dependency manifests and the
most relevant source files of a GitHub or GitLab repository and print
them as a single JSON or YAML document.

The repository may be given as owner/repo or as a clone URL, in which
case the provider is detected from the host.`,
	}
}

// Execute runs one ingestion and writes the bundle.
func (it *IngestController) Execute(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	repo, detected, err := entities.ParseRepository(args[0])
	if err != nil {
		return &entities.ConfigurationError{Setting: "repository", Message: err.Error()}
	}

	provider, _ := cmd.Flags().GetString("provider")
	if provider == "" {
		provider = detected
	}
	branch, _ := cmd.Flags().GetString("branch")
	token, _ := cmd.Flags().GetString("token")
	maxFiles, _ := cmd.Flags().GetInt("max-files")
	if !cmd.Flags().Changed("max-files") {
		maxFiles = settings.Ingest.MaxFiles
	}

	result, err := it.command.Execute(cmd.Context(), settings, entities.IngestOptions{
		Provider:   provider,
		Repository: repo.WithBranch(branch),
		Token:      token,
		MaxFiles:   maxFiles,
	})
	if err != nil {
		return err
	}
	return writeOutput(cmd, result)
}

// AddFlags adds the ingest-specific flags to the given Cobra command.
func (it *IngestController) AddFlags(cmd *cobra.Command) {
	cmd.Args = cobra.ExactArgs(1)
	cmd.Flags().StringP("provider", "p", "", "Hosting provider (github, gitlab); default detected or github")
	cmd.Flags().StringP("branch", "b", "", "Branch to read instead of the default branch")
	cmd.Flags().String("token", "", "Access token (overrides config and GITHUB_TOKEN/GITLAB_TOKEN)")
	cmd.Flags().IntP("max-files", "n", entities.DefaultMaxFiles, "Number of source files to include (1-200)")
	addOutputFlags(cmd)
}
