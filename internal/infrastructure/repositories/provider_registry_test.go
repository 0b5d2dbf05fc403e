//go:build unit

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/repodigest/internal/infrastructure/repositories"
	doubles "github.com/rios0rios0/repodigest/test/infrastructure/repositorydoubles"
)

func TestProviderRegistry(t *testing.T) {
	t.Parallel()

	t.Run("should build the registered provider with the given options", func(t *testing.T) {
		t.Parallel()

		// given
		var received entities.ProviderOptions
		spy := &doubles.SpyProviderRepository{ProviderName: "github"}
		reg := infraRepos.NewProviderRegistry()
		reg.Register("github", func(opts entities.ProviderOptions) (repositories.ProviderRepository, error) {
			received = opts
			return spy, nil
		})

		// when
		provider, err := reg.Get("github", entities.ProviderOptions{Token: "t0ken"})

		// then
		require.NoError(t, err)
		assert.Same(t, spy, provider)
		assert.Equal(t, "t0ken", received.Token)
	})

	t.Run("should return a configuration error for an unknown provider", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewProviderRegistry()
		factory := func(entities.ProviderOptions) (repositories.ProviderRepository, error) {
			return &doubles.DummyProviderRepository{}, nil
		}
		reg.Register("gitlab", factory)
		reg.Register("github", factory)

		// when
		_, err := reg.Get("bitbucket", entities.ProviderOptions{})

		// then
		var cfgErr *entities.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Contains(t, err.Error(), "bitbucket")
		assert.Contains(t, err.Error(), "available: github, gitlab")
	})

	t.Run("should list names in sorted order", func(t *testing.T) {
		t.Parallel()

		// given
		reg := infraRepos.NewProviderRegistry()
		factory := func(entities.ProviderOptions) (repositories.ProviderRepository, error) {
			return &doubles.DummyProviderRepository{}, nil
		}
		reg.Register("gitlab", factory)
		reg.Register("github", factory)

		// when
		names := reg.Names()

		// then
		assert.Equal(t, []string{"github", "gitlab"}, names)
	})
}
