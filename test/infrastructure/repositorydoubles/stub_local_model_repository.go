//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// SpyLocalModelRepository records local model calls and answers with its fields.
type SpyLocalModelRepository struct {
	PingErr    error
	Models     []string
	ModelsErr  error
	Response   string
	Embedding  []float32
	Err        error
	Endpoints  []entities.LocalModelEndpoint
	Generates  []entities.LocalGenerationRequest
	Embeddings []entities.EmbeddingRequest
}

var _ repositories.LocalModelRepository = (*SpyLocalModelRepository)(nil)

func (s *SpyLocalModelRepository) Ping(_ context.Context, endpoint entities.LocalModelEndpoint) error {
	s.Endpoints = append(s.Endpoints, endpoint)
	return s.PingErr
}

func (s *SpyLocalModelRepository) ListModels(
	_ context.Context,
	endpoint entities.LocalModelEndpoint,
) ([]string, error) {
	s.Endpoints = append(s.Endpoints, endpoint)
	return s.Models, s.ModelsErr
}

func (s *SpyLocalModelRepository) Generate(_ context.Context, req entities.LocalGenerationRequest) (string, error) {
	s.Generates = append(s.Generates, req)
	return s.Response, s.Err
}

func (s *SpyLocalModelRepository) Embed(_ context.Context, req entities.EmbeddingRequest) ([]float32, error) {
	s.Embeddings = append(s.Embeddings, req)
	return s.Embedding, s.Err
}
