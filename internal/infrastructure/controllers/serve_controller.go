package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/infrastructure/server"
)

// ServeController handles the "serve" subcommand.
type ServeController struct {
	ingest   commands.Ingest
	scan     commands.Scan
	generate commands.Generate
	local    commands.LocalModel
}

// NewServeController creates a new ServeController.
func NewServeController(
	ingest commands.Ingest,
	scan commands.Scan,
	generate commands.Generate,
	local commands.LocalModel,
) *ServeController {
	return &ServeController{ingest: ingest, scan: scan, generate: generate, local: local}
}

// GetBind returns the Cobra command metadata for the serve controller.
func (it *ServeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "serve",
		Short: "Expose ingest, scan, generate and local over HTTP",
		Long: `Start an HTTP API serving the same operations as the CLI:

  GET  /health
  POST /api/v1/ingest
  POST /api/v1/scan
  POST /api/v1/generate
  GET  /api/v1/generate/key-source
  GET  /api/v1/local/status
  GET  /api/v1/local/models
  POST /api/v1/local/generate
  POST /api/v1/local/embed

The default address only listens on loopback and refuses cross-origin
browser requests; set server.allowed_origins to opt in. Scans can be
limited to server.scan_roots. The server stops gracefully on SIGINT or
SIGTERM.`,
	}
}

// Execute blocks until the command context is cancelled.
func (it *ServeController) Execute(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("addr") {
		settings.Server.Address, _ = cmd.Flags().GetString("addr")
	}
	if len(settings.Server.AllowedOrigins) == 0 {
		logger.Info("No allowed_origins configured, cross-origin requests are refused")
	}

	handlers := server.NewHandlers(settings, it.ingest, it.scan, it.generate, it.local)
	return server.Run(cmd.Context(), settings.Server.Address, server.NewRouter(settings, handlers))
}

// AddFlags adds the serve-specific flags to the given Cobra command.
func (it *ServeController) AddFlags(cmd *cobra.Command) {
	cmd.Args = cobra.NoArgs
	cmd.Flags().String("addr", entities.DefaultServerAddress, "Listen address (overrides server.address)")
}
