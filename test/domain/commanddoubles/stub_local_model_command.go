//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// StubLocalModelCommand is a stub implementation of commands.LocalModel.
type StubLocalModelCommand struct {
	StatusResult entities.LocalModelStatus
	ModelNames   []string
	Response     string
	Embedding    []float32
	Err          error
	CallCount    int
	LastBaseURL  string
	LastOpts     commands.LocalModelOptions
}

var _ commands.LocalModel = (*StubLocalModelCommand)(nil)

func (s *StubLocalModelCommand) Status(
	_ context.Context,
	_ *entities.Settings,
	baseURL string,
) entities.LocalModelStatus {
	s.CallCount++
	s.LastBaseURL = baseURL
	return s.StatusResult
}

func (s *StubLocalModelCommand) Models(_ context.Context, _ *entities.Settings, baseURL string) ([]string, error) {
	s.CallCount++
	s.LastBaseURL = baseURL
	return s.ModelNames, s.Err
}

func (s *StubLocalModelCommand) Generate(
	_ context.Context,
	_ *entities.Settings,
	opts commands.LocalModelOptions,
) (string, error) {
	s.CallCount++
	s.LastOpts = opts
	return s.Response, s.Err
}

func (s *StubLocalModelCommand) Embed(
	_ context.Context,
	_ *entities.Settings,
	opts commands.LocalModelOptions,
) ([]float32, error) {
	s.CallCount++
	s.LastOpts = opts
	return s.Embedding, s.Err
}
