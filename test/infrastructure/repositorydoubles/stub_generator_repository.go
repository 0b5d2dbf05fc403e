//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// SpyGeneratorRepository records generation requests and answers with Response.
type SpyGeneratorRepository struct {
	Response string
	Err      error
	Requests []entities.GenerationRequest
}

var _ repositories.GeneratorRepository = (*SpyGeneratorRepository)(nil)

func (g *SpyGeneratorRepository) Generate(_ context.Context, req entities.GenerationRequest) (string, error) {
	g.Requests = append(g.Requests, req)
	return g.Response, g.Err
}
