package commands

import (
	"context"
	"fmt"
	"strings"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	infraRepos "github.com/rios0rios0/repodigest/internal/infrastructure/repositories"
)

const readmePath = "README"

// Ingest is the interface for the ingest command.
type Ingest interface {
	Execute(ctx context.Context, settings *entities.Settings, opts entities.IngestOptions) (*entities.IngestionResult, error)
}

// IngestCommand builds the context bundle of one hosted repository:
// resolve the tree -> fetch README, manifests and top-ranked sources -> assemble.
type IngestCommand struct {
	providerRegistry *infraRepos.ProviderRegistry
}

// NewIngestCommand creates a new IngestCommand backed by the provider registry.
func NewIngestCommand(providerRegistry *infraRepos.ProviderRegistry) *IngestCommand {
	return &IngestCommand{providerRegistry: providerRegistry}
}

// Execute runs one ingestion. Only provider setup and tree resolution can
// fail; every later fetch degrades to empty fields plus diagnostics.
func (it *IngestCommand) Execute(
	ctx context.Context,
	settings *entities.Settings,
	opts entities.IngestOptions,
) (*entities.IngestionResult, error) {
	if settings == nil {
		settings = entities.DefaultSettings()
	}
	if err := opts.Repository.Validate(); err != nil {
		return nil, &entities.ConfigurationError{Setting: "repository", Message: err.Error()}
	}

	providerType := opts.Provider
	if providerType == "" {
		providerType = entities.ProviderGitHub
	}
	provider, err := it.providerRegistry.Get(providerType, settings.ProviderOptionsFor(providerType, opts.Token))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider %q: %w", providerType, err)
	}

	repo := opts.Repository
	logger.Infof("Ingesting %s from %s", repo.FullName(), provider.Name())

	resolved, err := NewTreeResolver(provider, settings.Ingest.RequestTimeout).Resolve(ctx, repo)
	if err != nil {
		return nil, err
	}

	// every later request reads the ref the tree came from
	repo = repo.WithBranch(treeRef(repo, resolved))

	fetcher := NewContentFetcher(provider, settings.Ingest.Concurrency, settings.Ingest.RequestTimeout)
	manifests := entities.PresentManifests(resolved.Tree)
	sources := entities.SelectTop(resolved.Tree, entities.ClampMaxFiles(opts.MaxFiles))
	logger.Debugf("Selected %d manifests and %d source files", len(manifests), len(sources))

	jobs := make([]fetchJob, 0, len(manifests)+len(sources))
	for _, m := range manifests {
		jobs = append(jobs, fetchJob{path: m, stage: entities.StageManifest})
	}
	for _, s := range sources {
		jobs = append(jobs, fetchJob{path: s, stage: entities.StageSource})
	}

	var (
		wg        sync.WaitGroup
		readme    string
		readmeErr error
		outcomes  []fetchOutcome
	)
	wg.Add(2) //nolint:mnd // README + pool
	go func() {
		defer wg.Done()
		readme, readmeErr = it.fetchReadme(ctx, fetcher, repo)
	}()
	go func() {
		defer wg.Done()
		outcomes = fetcher.run(ctx, repo, jobs)
	}()
	wg.Wait()

	result := &entities.IngestionResult{
		Info: entities.RepositoryInfo{
			Owner:         repo.Owner,
			Repo:          repo.Name,
			DefaultBranch: resolved.DefaultBranch,
			Description:   resolved.Description,
		},
		Tree:        resolved.Tree,
		Readme:      readme,
		IsTruncated: resolved.IsTruncated,
	}
	if readmeErr != nil {
		logger.Warnf("README of %s unavailable: %v", repo.FullName(), readmeErr)
		result.Diagnostics = append(result.Diagnostics, entities.FetchFailure{
			Path:   readmePath,
			Stage:  entities.StageReadme,
			Reason: readmeErr.Error(),
		})
	}

	manifestEntries, manifestFailures := collect(jobs[:len(manifests)], outcomes[:len(manifests)])
	sourceEntries, sourceFailures := collect(jobs[len(manifests):], outcomes[len(manifests):])
	result.Dependencies = formatDependencies(manifestEntries)
	result.SourceFiles = sourceEntries
	result.Diagnostics = append(result.Diagnostics, manifestFailures...)
	result.Diagnostics = append(result.Diagnostics, sourceFailures...)

	logger.Infof("Ingested %s: %d tree entries, %d source files, %d fetch failures",
		repo.FullName(), len(result.Tree), len(result.SourceFiles), len(result.Diagnostics))
	return result, nil
}

func (it *IngestCommand) fetchReadme(
	ctx context.Context,
	fetcher *ContentFetcher,
	repo entities.Repository,
) (string, error) {
	reqCtx, cancel := withTimeout(ctx, fetcher.requestTimeout)
	defer cancel()

	env, err := fetcher.provider.GetReadme(reqCtx, repo)
	if err != nil {
		return "", err
	}
	return entities.DecodeEnvelope("decoding README", env)
}

// formatDependencies concatenates manifests as "\n--- name ---\ncontent\n" blocks.
func formatDependencies(manifests []entities.FileEntry) string {
	var b strings.Builder
	for _, m := range manifests {
		fmt.Fprintf(&b, "\n--- %s ---\n%s\n", m.Path, m.Content)
	}
	return b.String()
}
