//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// StubGenerateCommand is a stub implementation of commands.Generate.
type StubGenerateCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Response         string
	Source           string
	LastOpts         commands.GenerateOptions
}

var _ commands.Generate = (*StubGenerateCommand)(nil)

func (s *StubGenerateCommand) Execute(
	_ context.Context,
	_ *entities.Settings,
	opts commands.GenerateOptions,
) (string, error) {
	s.ExecuteCallCount++
	s.LastOpts = opts
	return s.Response, s.ExecuteErr
}

func (s *StubGenerateCommand) KeySource(_ *entities.Settings) string {
	if s.Source == "" {
		return "none"
	}
	return s.Source
}
