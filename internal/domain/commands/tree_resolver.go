package commands

import (
	"context"
	"time"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

const (
	stageMetadata = "repository metadata"
	stageTree     = "repository tree"
)

// TreeResolver fetches the repository metadata and its filtered, capped tree.
type TreeResolver struct {
	provider       repositories.ProviderRepository
	requestTimeout time.Duration
}

// NewTreeResolver creates a resolver whose two requests each get requestTimeout.
func NewTreeResolver(provider repositories.ProviderRepository, requestTimeout time.Duration) *TreeResolver {
	return &TreeResolver{provider: provider, requestTimeout: requestTimeout}
}

// Resolve returns the default branch, description and retained tree paths of
// repo. Both requests are fatal on failure.
func (r *TreeResolver) Resolve(ctx context.Context, repo entities.Repository) (entities.ResolvedTree, error) {
	metaCtx, cancelMeta := withTimeout(ctx, r.requestTimeout)
	meta, err := r.provider.GetMetadata(metaCtx, repo)
	cancelMeta()
	if err != nil {
		return entities.ResolvedTree{}, &entities.StageError{Stage: stageMetadata, Err: err}
	}

	resolved := entities.ResolvedTree{
		DefaultBranch: meta.DefaultBranch,
		Description:   meta.Description,
	}
	if resolved.DefaultBranch == "" {
		resolved.DefaultBranch = entities.DefaultBranchName
	}
	if resolved.Description == "" {
		resolved.Description = entities.NoDescription
	}

	ref := treeRef(repo, resolved)
	logger.Debugf("Listing tree of %s at %q", repo.FullName(), ref)

	treeCtx, cancelTree := withTimeout(ctx, r.requestTimeout)
	listing, err := r.provider.ListTree(treeCtx, repo, ref)
	cancelTree()
	if err != nil {
		return entities.ResolvedTree{}, &entities.StageError{Stage: stageTree, Err: err}
	}
	if listing.Truncated {
		logger.Warnf("Host truncated the tree of %s at %q, the bundle tree is incomplete", repo.FullName(), ref)
	}

	filtered := entities.FilterTree(listing.Entries)
	var capped bool
	resolved.Tree, capped = entities.TruncateTree(filtered)
	resolved.IsTruncated = capped || listing.Truncated
	logger.Debugf("Retained %d of %d tree entries (truncated: %t)",
		len(resolved.Tree), len(listing.Entries), resolved.IsTruncated)

	return resolved, nil
}

// treeRef is the explicit branch when the caller gave one, else the default.
func treeRef(repo entities.Repository, resolved entities.ResolvedTree) string {
	if repo.Branch != "" {
		return repo.Branch
	}
	return resolved.DefaultBranch
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
