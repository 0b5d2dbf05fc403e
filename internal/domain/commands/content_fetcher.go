package commands

import (
	"context"
	"fmt"
	"time"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// fetchJob is one file to download and the stage it belongs to.
type fetchJob struct {
	path  string
	stage entities.FetchStage
}

// fetchOutcome is the slot a single fetch writes into.
type fetchOutcome struct {
	entry entities.FileEntry
	err   error
}

// ContentFetcher downloads and decodes files through a bounded pool.
type ContentFetcher struct {
	provider       repositories.ProviderRepository
	concurrency    int
	requestTimeout time.Duration
}

// NewContentFetcher creates a fetcher running at most concurrency requests at once.
func NewContentFetcher(
	provider repositories.ProviderRepository,
	concurrency int,
	requestTimeout time.Duration,
) *ContentFetcher {
	if concurrency <= 0 {
		concurrency = entities.DefaultConcurrency
	}
	if concurrency > entities.MaxConcurrency {
		concurrency = entities.MaxConcurrency
	}
	return &ContentFetcher{
		provider:       provider,
		concurrency:    concurrency,
		requestTimeout: requestTimeout,
	}
}

// FetchOne downloads and decodes a single file under its own timeout.
func (f *ContentFetcher) FetchOne(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (entities.FileEntry, error) {
	reqCtx, cancel := withTimeout(ctx, f.requestTimeout)
	defer cancel()

	env, err := f.provider.GetContents(reqCtx, repo, path)
	if err != nil {
		return entities.FileEntry{}, err
	}

	content, err := entities.DecodeEnvelope(fmt.Sprintf("decoding %s", path), env)
	if err != nil {
		return entities.FileEntry{}, err
	}
	return entities.FileEntry{Path: path, Content: content}, nil
}

// FetchMany downloads every path and returns the successes in input order.
// Failed files are left out of the entries and reported as failures.
func (f *ContentFetcher) FetchMany(
	ctx context.Context,
	repo entities.Repository,
	stage entities.FetchStage,
	paths []string,
) ([]entities.FileEntry, []entities.FetchFailure) {
	jobs := make([]fetchJob, len(paths))
	for i, p := range paths {
		jobs[i] = fetchJob{path: p, stage: stage}
	}
	return collect(jobs, f.run(ctx, repo, jobs))
}

// run executes the jobs on the pool. Each goroutine writes only its own slot.
func (f *ContentFetcher) run(ctx context.Context, repo entities.Repository, jobs []fetchJob) []fetchOutcome {
	outcomes := make([]fetchOutcome, len(jobs))

	var group errgroup.Group
	group.SetLimit(f.concurrency)
	for i, job := range jobs {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i].err = err
				return nil
			}
			entry, err := f.FetchOne(ctx, repo, job.path)
			outcomes[i] = fetchOutcome{entry: entry, err: err}
			return nil
		})
	}
	_ = group.Wait()

	return outcomes
}

// collect splits outcomes into ordered entries and failures.
func collect(jobs []fetchJob, outcomes []fetchOutcome) ([]entities.FileEntry, []entities.FetchFailure) {
	entries := make([]entities.FileEntry, 0, len(outcomes))
	var failures []entities.FetchFailure
	for i, outcome := range outcomes {
		if outcome.err != nil {
			logger.Warnf("Skipping %s %q: %v", jobs[i].stage, jobs[i].path, outcome.err)
			failures = append(failures, entities.FetchFailure{
				Path:   jobs[i].path,
				Stage:  jobs[i].stage,
				Reason: outcome.err.Error(),
			})
			continue
		}
		entries = append(entries, outcome.entry)
	}
	return entries, failures
}
