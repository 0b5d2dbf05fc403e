package controllers

import (
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// ScanController handles the "scan" subcommand (local directory mode).
type ScanController struct {
	command commands.Scan
}

// NewScanController creates a new ScanController.
func NewScanController(command commands.Scan) *ScanController {
	return &ScanController{command: command}
}

// GetBind returns the Cobra command metadata for the scan controller.
func (it *ScanController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "scan [path]",
		Short: "Read the text files of a local checkout",
		Long: `Walk a local directory and print every readable text file.
VCS metadata, virtualenvs, editor folders and build output are skipped,
as are files over 1 MB. When the directory is a git checkout the origin
remote and current branch are reported too.`,
	}
}

// Execute scans the given path (default ".").
func (it *ScanController) Execute(cmd *cobra.Command, args []string) error {
	if _, err := loadSettings(cmd); err != nil {
		return err
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	result, err := it.command.Execute(cmd.Context(), root)
	if err != nil {
		return err
	}
	return writeOutput(cmd, result)
}

// AddFlags adds the scan-specific flags to the given Cobra command.
func (it *ScanController) AddFlags(cmd *cobra.Command) {
	cmd.Args = cobra.MaximumNArgs(1)
	addOutputFlags(cmd)
}
