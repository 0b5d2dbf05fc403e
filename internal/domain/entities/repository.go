package entities

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultBranchName is used when the hosting API does not report a default branch.
	DefaultBranchName = "main"
	// NoDescription is used when the hosting API does not report a description.
	NoDescription = "No description provided."
)

// Repository holds the coordinates of a hosted repository.
// An empty Branch means "whatever the host reports as the default branch".
type Repository struct {
	Owner  string `json:"owner"            yaml:"owner"`
	Name   string `json:"name"             yaml:"name"`
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// FullName returns the "owner/name" form used by every hosting API.
func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

// WithBranch returns a copy of the coordinates pinned to the given branch.
func (r Repository) WithBranch(branch string) Repository {
	r.Branch = branch
	return r
}

// Validate checks that both owner and name are present.
func (r Repository) Validate() error {
	if strings.TrimSpace(r.Owner) == "" || strings.TrimSpace(r.Name) == "" {
		return errors.New("repository owner and name are required")
	}
	return nil
}

// ParseRepository accepts "owner/name", a GitLab "group/subgroup/name" path, or
// a full remote URL (HTTPS or SSH) and returns the coordinates plus the
// provider type detected from the URL host or the nesting, if any.
func ParseRepository(raw string) (Repository, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Repository{}, "", errors.New("empty repository reference")
	}

	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "git@") {
		info, err := ParseRemoteURL(raw)
		if err != nil {
			return Repository{}, "", err
		}
		return Repository{Owner: info.Owner, Name: info.Name}, info.ProviderType, nil
	}

	owner, name, ok := SplitNamespace(strings.TrimSuffix(raw, ".git"))
	if !ok {
		return Repository{}, "", fmt.Errorf("expected <owner>/<repo>, got %q", raw)
	}
	if strings.Contains(owner, "/") {
		// only GitLab nests namespaces
		return Repository{Owner: owner, Name: name}, ProviderGitLab, nil
	}
	return Repository{Owner: owner, Name: name}, "", nil
}

// RepositoryInfo is the metadata block of an ingestion bundle.
type RepositoryInfo struct {
	Owner         string `json:"owner"          yaml:"owner"`
	Repo          string `json:"repo"           yaml:"repo"`
	DefaultBranch string `json:"default_branch" yaml:"default_branch"`
	Description   string `json:"description"    yaml:"description"`
}

// RepositoryMetadata is what a provider reports about a repository. Empty
// fields mean the host did not report them.
type RepositoryMetadata struct {
	DefaultBranch string
	Description   string
}
