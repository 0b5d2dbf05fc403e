package repositories

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// ProviderRepository abstracts a repository hosting service (GitHub, GitLab).
// Implementations return errors from the entities error taxonomy so callers
// can tell transport failures from upstream statuses and bad payloads.
type ProviderRepository interface {
	// Name returns the provider identifier (e.g. "github").
	Name() string

	// GetMetadata fetches the default branch and description of a repository.
	GetMetadata(ctx context.Context, repo entities.Repository) (entities.RepositoryMetadata, error)

	// ListTree returns every entry of the recursive tree at ref, in upstream order.
	ListTree(ctx context.Context, repo entities.Repository, ref string) (entities.TreeListing, error)

	// GetReadme returns the content envelope of the repository README.
	GetReadme(ctx context.Context, repo entities.Repository) (entities.Envelope, error)

	// GetContents returns the content envelope of one file. repo.Branch, when
	// set, selects the ref.
	GetContents(ctx context.Context, repo entities.Repository, path string) (entities.Envelope, error)
}
