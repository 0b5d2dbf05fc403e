package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
	"github.com/rios0rios0/repodigest/internal/infrastructure/httpclient"
)

const (
	providerName = "gitlab"
	perPage      = 100
	headRef      = "HEAD"
)

// readmeCandidates are tried in order since GitLab has no README endpoint.
var readmeCandidates = []string{"README.md", "README", "readme.md", "README.rst", "README.txt"}

// GitLabProviderRepository implements repositories.ProviderRepository for GitLab.
type GitLabProviderRepository struct {
	client *gl.Client
}

// NewProviderRepository creates a GitLab provider. BaseURL targets a
// self-hosted instance.
func NewProviderRepository(opts entities.ProviderOptions) (repositories.ProviderRepository, error) {
	httpClient, err := httpclient.New(httpclient.Options{Timeout: opts.Timeout, Proxy: opts.Proxy})
	if err != nil {
		return nil, &entities.ConfigurationError{Setting: "proxy", Message: err.Error()}
	}

	clientOpts := []gl.ClientOptionFunc{gl.WithHTTPClient(httpClient)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, gl.WithBaseURL(opts.BaseURL))
	}

	client, err := gl.NewClient(opts.Token, clientOpts...)
	if err != nil {
		return nil, &entities.ConfigurationError{Setting: "base_url", Message: err.Error()}
	}
	return &GitLabProviderRepository{client: client}, nil
}

func (p *GitLabProviderRepository) Name() string { return providerName }

func (p *GitLabProviderRepository) GetMetadata(
	ctx context.Context,
	repo entities.Repository,
) (entities.RepositoryMetadata, error) {
	op := fmt.Sprintf("getting project %s", repo.FullName())
	project, resp, err := p.client.Projects.GetProject(repo.FullName(), nil, gl.WithContext(ctx))
	if err != nil {
		return entities.RepositoryMetadata{}, handleGitlabError(op, resp, err)
	}

	return entities.RepositoryMetadata{
		DefaultBranch: project.DefaultBranch,
		Description:   project.Description,
	}, nil
}

func (p *GitLabProviderRepository) ListTree(
	ctx context.Context,
	repo entities.Repository,
	ref string,
) (entities.TreeListing, error) {
	op := fmt.Sprintf("listing tree %s of %s", ref, repo.FullName())
	opts := &gl.ListTreeOptions{
		ListOptions: gl.ListOptions{PerPage: perPage},
		Ref:         gl.Ptr(ref),
		Recursive:   gl.Ptr(true),
	}

	var entries []entities.TreeEntry
	for {
		nodes, resp, err := p.client.Repositories.ListTree(repo.FullName(), opts, gl.WithContext(ctx))
		if err != nil {
			return entities.TreeListing{}, handleGitlabError(op, resp, err)
		}

		for _, node := range nodes {
			entries = append(entries, entities.TreeEntry{Path: node.Path, Type: node.Type})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return entities.TreeListing{Entries: entries}, nil
}

// GetReadme tries the usual README names at the repository root.
func (p *GitLabProviderRepository) GetReadme(
	ctx context.Context,
	repo entities.Repository,
) (entities.Envelope, error) {
	var lastErr error
	for _, name := range readmeCandidates {
		env, err := p.GetContents(ctx, repo, name)
		if err == nil {
			return env, nil
		}
		lastErr = err

		var statusErr *entities.UpstreamStatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
			return entities.Envelope{}, err
		}
	}
	return entities.Envelope{}, lastErr
}

func (p *GitLabProviderRepository) GetContents(
	ctx context.Context,
	repo entities.Repository,
	path string,
) (entities.Envelope, error) {
	op := fmt.Sprintf("getting file %s of %s", path, repo.FullName())
	ref := repo.Branch
	if ref == "" {
		ref = headRef
	}

	file, resp, err := p.client.RepositoryFiles.GetFile(
		repo.FullName(), path,
		&gl.GetFileOptions{Ref: gl.Ptr(ref)},
		gl.WithContext(ctx),
	)
	if err != nil {
		return entities.Envelope{}, handleGitlabError(op, resp, err)
	}

	return entities.Envelope{Content: file.Content, Encoding: file.Encoding}, nil
}

// handleGitlabError maps client-go failures onto the entities error taxonomy.
// The response status wins when the server answered at all.
func handleGitlabError(op string, resp *gl.Response, err error) error {
	if resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusBadRequest {
		body := ""
		var errResp *gl.ErrorResponse
		if errors.As(err, &errResp) {
			body = errResp.Message
		}
		return &entities.UpstreamStatusError{Op: op, StatusCode: resp.StatusCode, Body: body}
	}

	if errors.Is(err, gl.ErrNotFound) {
		return &entities.UpstreamStatusError{Op: op, StatusCode: http.StatusNotFound}
	}

	if resp != nil && resp.Response != nil {
		// the server answered 2xx but the payload did not parse
		return &entities.DecodeError{Op: op, Err: err}
	}

	return &entities.TransportError{Op: op, Err: err}
}
