package entities

import (
	"fmt"
	"strings"
)

const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
)

// RemoteInfo holds the parsed components of a Git remote URL.
type RemoteInfo struct {
	ProviderType string
	Owner        string
	Name         string
}

// ParseRemoteURL extracts provider, owner and repository name from a Git remote URL.
func ParseRemoteURL(rawURL string) (*RemoteInfo, error) {
	cleaned := strings.TrimSuffix(strings.TrimSpace(rawURL), "/")
	cleaned = strings.TrimSuffix(cleaned, ".git")

	if strings.Contains(cleaned, "github.com") {
		o, r, e := parseStandardGitURL(cleaned, "github.com", false)
		if e != nil {
			return nil, e
		}
		return &RemoteInfo{ProviderType: ProviderGitHub, Owner: o, Name: r}, nil
	}

	if strings.Contains(cleaned, "gitlab.com") {
		o, r, e := parseStandardGitURL(cleaned, "gitlab.com", true)
		if e != nil {
			return nil, e
		}
		return &RemoteInfo{ProviderType: ProviderGitLab, Owner: o, Name: r}, nil
	}

	return nil, fmt.Errorf("unsupported git remote URL: %s", rawURL)
}

// parseStandardGitURL splits the path of a remote URL into owner and name.
// With nested set (GitLab subgroups) the owner is every segment but the last,
// and anything after a "/-/" route separator is dropped.
func parseStandardGitURL(url, hostname string, nested bool) (string, string, error) {
	var pathPart string

	if strings.HasPrefix(url, "git@") {
		parts := strings.SplitN(url, ":", 2) //nolint:mnd // host:path
		if len(parts) < 2 {                  //nolint:mnd // need both parts
			return "", "", fmt.Errorf("invalid SSH URL: %s", url)
		}
		pathPart = parts[1]
	} else {
		_, after, ok := strings.Cut(url, hostname)
		if !ok {
			return "", "", fmt.Errorf("hostname %s not found in URL: %s", hostname, url)
		}
		pathPart = strings.TrimPrefix(after, "/")
	}

	if !nested {
		segments := strings.Split(pathPart, "/")
		if len(segments) < 2 || segments[0] == "" || segments[1] == "" { //nolint:mnd // need owner + repo
			return "", "", fmt.Errorf("cannot extract owner/repo from URL: %s", url)
		}
		return segments[0], segments[1], nil
	}

	if before, _, found := strings.Cut(pathPart, "/-/"); found {
		pathPart = before
	}
	owner, name, ok := SplitNamespace(strings.TrimSuffix(pathPart, ".git"))
	if !ok {
		return "", "", fmt.Errorf("cannot extract namespace/repo from URL: %s", url)
	}
	return owner, name, nil
}

// SplitNamespace splits "group/subgroup/name" at its last slash. Every
// segment must be non-empty.
func SplitNamespace(path string) (string, string, bool) {
	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return "", "", false
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == "" {
			return "", "", false
		}
	}
	return path[:idx], path[idx+1:], true
}
