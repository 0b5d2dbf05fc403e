package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewIngestController); err != nil {
		return err
	}
	if err := container.Provide(NewScanController); err != nil {
		return err
	}
	if err := container.Provide(NewGenerateController); err != nil {
		return err
	}
	if err := container.Provide(NewLocalController); err != nil {
		return err
	}
	if err := container.Provide(NewServeController); err != nil {
		return err
	}
	if err := container.Provide(NewControllers); err != nil {
		return err
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	ingestController *IngestController,
	scanController *ScanController,
	generateController *GenerateController,
	localController *LocalController,
	serveController *ServeController,
) *[]entities.Controller {
	return &[]entities.Controller{
		ingestController,
		scanController,
		generateController,
		localController,
		serveController,
	}
}
