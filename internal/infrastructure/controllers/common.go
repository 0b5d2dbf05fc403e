package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// loadSettings reads the global --config and --verbose flags.
func loadSettings(cmd *cobra.Command) (*entities.Settings, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetLevel(logger.DebugLevel)
	}

	configPath, _ := cmd.Flags().GetString("config")
	settings, err := entities.LoadSettings(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return settings, nil
}

// addOutputFlags registers --format and --output on a command that prints a document.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", formatJSON, "Output format (json, yaml)")
	cmd.Flags().StringP("output", "o", "", "Write the result to this file instead of stdout")
}

// writeOutput renders value in the requested format to stdout or --output.
func writeOutput(cmd *cobra.Command, value any) error {
	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")

	data, err := render(format, value)
	if err != nil {
		return err
	}

	if outputPath == "" {
		return writeAll(cmd.OutOrStdout(), data)
	}

	if writeErr := os.WriteFile(outputPath, data, 0o644); writeErr != nil { //nolint:gosec // bundle is meant to be shared
		return fmt.Errorf("failed to write %q: %w", outputPath, writeErr)
	}
	logger.Infof("Wrote %d bytes to %s", len(data), outputPath)
	return nil
}

func render(format string, value any) ([]byte, error) {
	switch format {
	case "", formatJSON:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(data, '\n'), nil
	case formatYAML, "yml":
		data, err := yaml.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return data, nil
	default:
		return nil, &entities.ConfigurationError{
			Setting: "format",
			Message: fmt.Sprintf("unsupported output format %q (json, yaml)", format),
		}
	}
}

func writeAll(w io.Writer, data []byte) error {
	_, err := w.Write(data)
	return err
}
