package repositories

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// GeneratorRepository sends prompts to a hosted text generation API.
type GeneratorRepository interface {
	Generate(ctx context.Context, req entities.GenerationRequest) (string, error)
}
