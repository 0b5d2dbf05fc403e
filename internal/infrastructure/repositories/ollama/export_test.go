package ollama

import "github.com/rios0rios0/repodigest/internal/domain/repositories"

// NewLocalModelRepositoryWithRetries builds a repository with a custom retry budget for testing.
func NewLocalModelRepositoryWithRetries(retryMax int) repositories.LocalModelRepository {
	return &LocalModelRepository{retryMax: retryMax}
}
