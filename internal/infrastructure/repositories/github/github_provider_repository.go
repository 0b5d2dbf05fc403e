package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	gh "github.com/google/go-github/v66/github"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
	"github.com/rios0rios0/repodigest/internal/infrastructure/httpclient"
)

const providerName = "github"

// GitHubProviderRepository implements repositories.ProviderRepository for GitHub.
type GitHubProviderRepository struct {
	client *gh.Client
}

// NewProviderRepository creates a GitHub provider. The token is optional;
// BaseURL points the client at a GitHub Enterprise API root.
func NewProviderRepository(opts entities.ProviderOptions) (repositories.ProviderRepository, error) {
	httpClient, err := httpclient.New(httpclient.Options{Timeout: opts.Timeout, Proxy: opts.Proxy})
	if err != nil {
		return nil, &entities.ConfigurationError{Setting: "proxy", Message: err.Error()}
	}

	client := gh.NewClient(httpClient)
	if opts.Token != "" {
		client = client.WithAuthToken(opts.Token)
	}

	if opts.BaseURL != "" {
		baseURL, parseErr := url.Parse(strings.TrimSuffix(opts.BaseURL, "/") + "/")
		if parseErr != nil {
			return nil, &entities.ConfigurationError{Setting: "base_url", Message: parseErr.Error()}
		}
		client.BaseURL = baseURL
	}

	return &GitHubProviderRepository{client: client}, nil
}

func (p *GitHubProviderRepository) Name() string { return providerName }

// GetMetadata fetches the repository description and default branch.
func (p *GitHubProviderRepository) GetMetadata(
	ctx context.Context,
	repo entities.Repository,
) (entities.RepositoryMetadata, error) {
	op := fmt.Sprintf("getting repository info for %s", repo.FullName())
	r, _, err := p.client.Repositories.Get(ctx, repo.Owner, repo.Name)
	if err != nil {
		return entities.RepositoryMetadata{}, handleGithubError(op, err)
	}

	return entities.RepositoryMetadata{
		DefaultBranch: r.GetDefaultBranch(),
		Description:   r.GetDescription(),
	}, nil
}

// ListTree fetches the recursive git tree at ref. GitHub caps recursive
// listings and reports that through Truncated.
func (p *GitHubProviderRepository) ListTree(
	ctx context.Context,
	repo entities.Repository,
	ref string,
) (entities.TreeListing, error) {
	op := fmt.Sprintf("getting tree %s of %s", ref, repo.FullName())
	tree, _, err := p.client.Git.GetTree(ctx, repo.Owner, repo.Name, ref, true)
	if err != nil {
		return entities.TreeListing{}, handleGithubError(op, err)
	}

	entries := make([]entities.TreeEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		entries = append(entries, entities.TreeEntry{
			Path: entry.GetPath(),
			Type: entry.GetType(),
		})
	}
	return entities.TreeListing{Entries: entries, Truncated: tree.GetTruncated()}, nil
}

// GetReadme fetches the README GitHub selects for the repository.
func (p *GitHubProviderRepository) GetReadme(
	ctx context.Context,
	repo entities.Repository,
) (entities.Envelope, error) {
	op := fmt.Sprintf("getting README of %s", repo.FullName())
	readme, _, err := p.client.Repositories.GetReadme(ctx, repo.Owner, repo.Name, contentOptions(repo))
	if err != nil {
		return entities.Envelope{}, handleGithubError(op, err)
	}
	return toEnvelope(op, readme)
}

// GetContents fetches the content envelope of a single file.
func (p *GitHubProviderRepository) GetContents(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (entities.Envelope, error) {
	op := fmt.Sprintf("getting file %s of %s", path, repo.FullName())
	fileContent, _, _, err := p.client.Repositories.GetContents(
		ctx, repo.Owner, repo.Name, path, contentOptions(repo),
	)
	if err != nil {
		return entities.Envelope{}, handleGithubError(op, err)
	}
	return toEnvelope(op, fileContent)
}

func contentOptions(repo entities.Repository) *gh.RepositoryContentGetOptions {
	return &gh.RepositoryContentGetOptions{Ref: repo.Branch}
}

func toEnvelope(op string, content *gh.RepositoryContent) (entities.Envelope, error) {
	if content == nil {
		return entities.Envelope{}, &entities.DecodeError{Op: op, Err: errors.New("path is a directory, not a file")}
	}
	if content.Content == nil {
		return entities.Envelope{}, &entities.DecodeError{Op: op, Err: errors.New("response has no content field")}
	}
	return entities.Envelope{Content: *content.Content, Encoding: content.GetEncoding()}, nil
}

// handleGithubError converts an error from the go-github client into the
// entities error taxonomy, keeping the operation for context.
func handleGithubError(op string, err error) error {
	if err == nil {
		return nil
	}

	var errResp *gh.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &entities.UpstreamStatusError{Op: op, StatusCode: errResp.Response.StatusCode, Body: errResp.Message}
	}

	var rateErr *gh.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &entities.UpstreamStatusError{Op: op, StatusCode: rateErr.Response.StatusCode, Body: rateErr.Message}
	}

	var abuseErr *gh.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return &entities.UpstreamStatusError{Op: op, StatusCode: abuseErr.Response.StatusCode, Body: abuseErr.Message}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &entities.DecodeError{Op: op, Err: err}
	}

	return &entities.TransportError{Op: op, Err: err}
}
