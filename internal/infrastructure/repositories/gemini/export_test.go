package gemini

import "github.com/rios0rios0/repodigest/internal/domain/repositories"

// NewGeneratorRepositoryForURL builds a generator against a fake endpoint for testing.
func NewGeneratorRepositoryForURL(baseURL string) repositories.GeneratorRepository {
	return &GeneratorRepository{baseURL: baseURL}
}
