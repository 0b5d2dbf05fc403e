//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. Hand-written, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// SpyProviderRepository implements repositories.ProviderRepository as a configurable spy.
// It is safe for the concurrent fetches the ingest pipeline issues.
type SpyProviderRepository struct {
	mu sync.Mutex

	// --- identity ---
	ProviderName string

	// --- GetMetadata ---
	Metadata    entities.RepositoryMetadata
	MetadataErr error

	// --- ListTree ---
	TreeEntries   []entities.TreeEntry
	TreeTruncated bool
	TreeErr       error
	TreeRefs      []string

	// --- GetReadme ---
	Readme      *entities.Envelope
	ReadmeErr   error
	ReadmeCalls int

	// --- GetContents ---
	// Files maps a path to its envelope; paths absent from the map answer 404.
	Files         map[string]entities.Envelope
	FileErrs      map[string]error
	Delay         time.Duration
	RequestedRefs map[string]string
	inFlight      int
	MaxInFlight   int
}

var _ repositories.ProviderRepository = (*SpyProviderRepository)(nil)

func (p *SpyProviderRepository) Name() string { return p.ProviderName }

func (p *SpyProviderRepository) GetMetadata(
	_ context.Context, _ entities.Repository,
) (entities.RepositoryMetadata, error) {
	return p.Metadata, p.MetadataErr
}

func (p *SpyProviderRepository) ListTree(
	_ context.Context, _ entities.Repository, ref string,
) (entities.TreeListing, error) {
	p.mu.Lock()
	p.TreeRefs = append(p.TreeRefs, ref)
	p.mu.Unlock()
	return entities.TreeListing{Entries: p.TreeEntries, Truncated: p.TreeTruncated}, p.TreeErr
}

func (p *SpyProviderRepository) GetReadme(
	_ context.Context, _ entities.Repository,
) (entities.Envelope, error) {
	p.mu.Lock()
	p.ReadmeCalls++
	p.mu.Unlock()

	if p.ReadmeErr != nil {
		return entities.Envelope{}, p.ReadmeErr
	}
	if p.Readme == nil {
		return entities.Envelope{}, &entities.UpstreamStatusError{Op: "getting README", StatusCode: http.StatusNotFound}
	}
	return *p.Readme, nil
}

func (p *SpyProviderRepository) GetContents(
	ctx context.Context, repo entities.Repository, path string,
) (entities.Envelope, error) {
	p.mu.Lock()
	if p.RequestedRefs == nil {
		p.RequestedRefs = make(map[string]string)
	}
	p.RequestedRefs[path] = repo.Branch
	p.inFlight++
	if p.inFlight > p.MaxInFlight {
		p.MaxInFlight = p.inFlight
	}
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.inFlight--
		p.mu.Unlock()
	}()

	if p.Delay > 0 {
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return entities.Envelope{}, &entities.TransportError{Op: "getting " + path, Err: ctx.Err()}
		}
	}

	if err, ok := p.FileErrs[path]; ok {
		return entities.Envelope{}, err
	}
	if env, ok := p.Files[path]; ok {
		return env, nil
	}
	return entities.Envelope{}, &entities.UpstreamStatusError{
		Op:         fmt.Sprintf("getting file %s", path),
		StatusCode: http.StatusNotFound,
	}
}

// Requested returns the paths GetContents was called with.
func (p *SpyProviderRepository) Requested() map[string]string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make(map[string]string, len(p.RequestedRefs))
	for k, v := range p.RequestedRefs {
		out[k] = v
	}
	return out
}

// DummyProviderRepository is a no-op implementation of repositories.ProviderRepository.
type DummyProviderRepository struct{}

var _ repositories.ProviderRepository = (*DummyProviderRepository)(nil)

func (d *DummyProviderRepository) Name() string { return "dummy" }

func (d *DummyProviderRepository) GetMetadata(
	_ context.Context, _ entities.Repository,
) (entities.RepositoryMetadata, error) {
	return entities.RepositoryMetadata{}, nil
}

func (d *DummyProviderRepository) ListTree(
	_ context.Context, _ entities.Repository, _ string,
) (entities.TreeListing, error) {
	return entities.TreeListing{}, nil
}

func (d *DummyProviderRepository) GetReadme(
	_ context.Context, _ entities.Repository,
) (entities.Envelope, error) {
	return entities.Envelope{}, nil
}

func (d *DummyProviderRepository) GetContents(
	_ context.Context, _ entities.Repository, _ string,
) (entities.Envelope, error) {
	return entities.Envelope{}, nil
}
