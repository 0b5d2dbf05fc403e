package repositories

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// LocalModelRepository talks to a locally hosted model server.
type LocalModelRepository interface {
	// Ping succeeds when the server answers its model listing with a 2xx status.
	Ping(ctx context.Context, endpoint entities.LocalModelEndpoint) error
	// ListModels returns the installed model names; a non-2xx answer yields none.
	ListModels(ctx context.Context, endpoint entities.LocalModelEndpoint) ([]string, error)
	Generate(ctx context.Context, req entities.LocalGenerationRequest) (string, error)
	Embed(ctx context.Context, req entities.EmbeddingRequest) ([]float32, error)
}
