//go:build unit

package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/repodigest/internal/infrastructure/repositories/github"
)

func newFakeGitHub(t *testing.T, routes map[string]string) repositories.ProviderRepository {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	provider, err := ghRepo.NewProviderRepository(entities.ProviderOptions{
		Token:   "ghp_test",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return provider
}

func TestGitHubProviderRepository(t *testing.T) {
	t.Parallel()

	repo := entities.Repository{Owner: "acme", Name: "widget"}

	t.Run("Name", func(t *testing.T) {
		t.Parallel()

		t.Run("should return github", func(t *testing.T) {
			t.Parallel()

			// given
			p, err := ghRepo.NewProviderRepository(entities.ProviderOptions{})
			require.NoError(t, err)

			// when
			name := p.Name()

			// then
			assert.Equal(t, "github", name)
		})
	})

	t.Run("GetMetadata", func(t *testing.T) {
		t.Parallel()

		t.Run("should return default branch and description", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget": `{"default_branch":"develop","description":"Widgets"}`,
			})

			// when
			meta, err := p.GetMetadata(context.Background(), repo)

			// then
			require.NoError(t, err)
			assert.Equal(t, "develop", meta.DefaultBranch)
			assert.Equal(t, "Widgets", meta.Description)
		})

		t.Run("should leave missing fields empty", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget": `{"name":"widget","description":null}`,
			})

			// when
			meta, err := p.GetMetadata(context.Background(), repo)

			// then
			require.NoError(t, err)
			assert.Empty(t, meta.DefaultBranch)
			assert.Empty(t, meta.Description)
		})

		t.Run("should return an upstream status error for unknown repository", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{})

			// when
			_, err := p.GetMetadata(context.Background(), repo)

			// then
			var statusErr *entities.UpstreamStatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
			assert.Contains(t, statusErr.Op, "acme/widget")
		})

		t.Run("should return a decode error for malformed JSON", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget": `{"default_branch":`,
			})

			// when
			_, err := p.GetMetadata(context.Background(), repo)

			// then
			var decodeErr *entities.DecodeError
			require.ErrorAs(t, err, &decodeErr)
		})
	})

	t.Run("ListTree", func(t *testing.T) {
		t.Parallel()

		t.Run("should return entries in upstream order", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget/git/trees/main?recursive=1": `{"sha":"abc","tree":[
					{"path":"src","type":"tree"},
					{"path":"src/main.go","type":"blob"},
					{"path":"README.md","type":"blob"}
				]}`,
			})

			// when
			listing, err := p.ListTree(context.Background(), repo, "main")

			// then
			require.NoError(t, err)
			assert.Equal(t, []entities.TreeEntry{
				{Path: "src", Type: "tree"},
				{Path: "src/main.go", Type: "blob"},
				{Path: "README.md", Type: "blob"},
			}, listing.Entries)
			assert.False(t, listing.Truncated)
		})

		t.Run("should carry the truncated flag GitHub reports", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget/git/trees/main?recursive=1": `{"sha":"abc","truncated":true,"tree":[
					{"path":"main.go","type":"blob"}
				]}`,
			})

			// when
			listing, err := p.ListTree(context.Background(), repo, "main")

			// then
			require.NoError(t, err)
			assert.True(t, listing.Truncated)
			assert.Len(t, listing.Entries, 1)
		})
	})

	t.Run("GetReadme", func(t *testing.T) {
		t.Parallel()

		t.Run("should return the raw base64 envelope", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget/readme": `{"type":"file","encoding":"base64","content":"aGVs\nbG8="}`,
			})

			// when
			env, err := p.GetReadme(context.Background(), repo)

			// then
			require.NoError(t, err)
			assert.Equal(t, "base64", env.Encoding)
			assert.Equal(t, "aGVs\nbG8=", env.Content)
		})
	})

	t.Run("GetContents", func(t *testing.T) {
		t.Parallel()

		t.Run("should return the envelope of a file", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget/contents/src/main.go": `{"type":"file","encoding":"base64","content":"cGFja2FnZSBtYWlu"}`,
			})

			// when
			env, err := p.GetContents(context.Background(), repo, "src/main.go")

			// then
			require.NoError(t, err)
			text, decodeErr := entities.DecodeEnvelope("test", env)
			require.NoError(t, decodeErr)
			assert.Equal(t, "package main", text)
		})

		t.Run("should pass the pinned branch as ref", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget/contents/go.mod?ref=develop": `{"type":"file","encoding":"base64","content":"bW9kdWxlIHg="}`,
			})

			// when
			env, err := p.GetContents(context.Background(), repo.WithBranch("develop"), "go.mod")

			// then
			require.NoError(t, err)
			assert.Equal(t, "bW9kdWxlIHg=", env.Content)
		})

		t.Run("should reject a directory listing", func(t *testing.T) {
			t.Parallel()

			// given
			p := newFakeGitHub(t, map[string]string{
				"/repos/acme/widget/contents/src": `[{"type":"file","path":"src/main.go"}]`,
			})

			// when
			_, err := p.GetContents(context.Background(), repo, "src")

			// then
			var decodeErr *entities.DecodeError
			require.ErrorAs(t, err, &decodeErr)
		})
	})

	t.Run("should report a configuration error for an invalid proxy", func(t *testing.T) {
		t.Parallel()

		// when
		_, err := ghRepo.NewProviderRepository(entities.ProviderOptions{Proxy: "http://"})

		// then
		var cfgErr *entities.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "proxy", cfgErr.Setting)
	})
}
