//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// StubIngestCommand is a stub implementation of commands.Ingest.
type StubIngestCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *entities.IngestionResult
	LastSettings     *entities.Settings
	LastOpts         entities.IngestOptions
}

var _ commands.Ingest = (*StubIngestCommand)(nil)

func (s *StubIngestCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts entities.IngestOptions,
) (*entities.IngestionResult, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Result, nil
}
