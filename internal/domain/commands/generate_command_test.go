//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/repodigest/test/infrastructure/repositorydoubles"
)

func clearKeyEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("VITE_GEMINI_API_KEY", "")
}

func TestGenerateCommandExecute(t *testing.T) {
	t.Run("should prefer the explicit key and pass the prompt through", func(t *testing.T) {
		// given
		clearKeyEnv(t)
		spy := &doubles.SpyGeneratorRepository{Response: "summary"}
		cmd := commands.NewGenerateCommand(spy)
		settings := entitybuilders.NewSettingsBuilder().WithGeneratorKey("config-key").BuildSettings()

		// when
		out, err := cmd.Execute(context.Background(), settings,
			commands.GenerateOptions{Prompt: "explain", APIKey: "  flag-key  "})

		// then
		require.NoError(t, err)
		assert.Equal(t, "summary", out)
		require.Len(t, spy.Requests, 1)
		assert.Equal(t, "flag-key", spy.Requests[0].APIKey)
		assert.Equal(t, "explain", spy.Requests[0].Prompt)
		assert.Equal(t, entities.DefaultGeneratorModel, spy.Requests[0].Model)
		assert.Equal(t, entities.DefaultClientTimeout, spy.Requests[0].Timeout)
	})

	t.Run("should fall back to the environment", func(t *testing.T) {
		// given
		clearKeyEnv(t)
		t.Setenv("VITE_GEMINI_API_KEY", "vite-key")
		spy := &doubles.SpyGeneratorRepository{}
		cmd := commands.NewGenerateCommand(spy)

		// when
		_, err := cmd.Execute(context.Background(), nil, commands.GenerateOptions{Prompt: "explain"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "vite-key", spy.Requests[0].APIKey)
	})

	t.Run("should treat the placeholder as a missing key", func(t *testing.T) {
		// given
		clearKeyEnv(t)
		t.Setenv("GEMINI_API_KEY", "YOUR_GEMINI_API_KEY_HERE")
		spy := &doubles.SpyGeneratorRepository{}
		cmd := commands.NewGenerateCommand(spy)

		// when
		_, err := cmd.Execute(context.Background(), nil, commands.GenerateOptions{Prompt: "explain"})

		// then
		var cfgErr *entities.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "api_key", cfgErr.Setting)
		assert.Empty(t, spy.Requests)
	})

	t.Run("should use the configured proxy when none is given", func(t *testing.T) {
		// given
		clearKeyEnv(t)
		spy := &doubles.SpyGeneratorRepository{}
		cmd := commands.NewGenerateCommand(spy)
		settings := entitybuilders.NewSettingsBuilder().
			WithGeneratorKey("k").
			WithGeneratorProxy("127.0.0.1:7890").
			BuildSettings()

		// when
		_, err := cmd.Execute(context.Background(), settings,
			commands.GenerateOptions{Prompt: "explain", Model: "gemini-2.5-pro"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:7890", spy.Requests[0].Proxy)
		assert.Equal(t, "gemini-2.5-pro", spy.Requests[0].Model)
	})

	t.Run("should reject an empty prompt", func(t *testing.T) {
		// given
		spy := &doubles.SpyGeneratorRepository{}
		cmd := commands.NewGenerateCommand(spy)

		// when
		_, err := cmd.Execute(context.Background(), nil, commands.GenerateOptions{Prompt: "  ", APIKey: "k"})

		// then
		var cfgErr *entities.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "prompt", cfgErr.Setting)
	})
}

func TestGenerateCommandKeySource(t *testing.T) {
	t.Run("should report none without a key", func(t *testing.T) {
		// given
		clearKeyEnv(t)
		cmd := commands.NewGenerateCommand(&doubles.SpyGeneratorRepository{})

		// when
		source := cmd.KeySource(nil)

		// then
		assert.Equal(t, "none", source)
	})

	t.Run("should mask an environment key", func(t *testing.T) {
		// given
		clearKeyEnv(t)
		t.Setenv("GEMINI_API_KEY", "AIzaSyExampleKey1234")
		cmd := commands.NewGenerateCommand(&doubles.SpyGeneratorRepository{})

		// when
		source := cmd.KeySource(nil)

		// then
		assert.Equal(t, "env:AIza...1234", source)
	})

	t.Run("should report a configured key", func(t *testing.T) {
		// given
		clearKeyEnv(t)
		cmd := commands.NewGenerateCommand(&doubles.SpyGeneratorRepository{})
		settings := entitybuilders.NewSettingsBuilder().WithGeneratorKey("cfgkey-abcdef").BuildSettings()

		// when
		source := cmd.KeySource(settings)

		// then
		assert.Equal(t, "config:cfgk...cdef", source)
	})
}

func TestMaskKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "should keep four characters on each side", key: "abcdefghij", expected: "abcd...ghij"},
		{name: "should overlap for short keys", key: "abc", expected: "abc...abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// when
			out := commands.MaskKey(tt.key)

			// then
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	t.Run("should prefer GEMINI_API_KEY over VITE_GEMINI_API_KEY", func(t *testing.T) {
		// given
		t.Setenv("GEMINI_API_KEY", "system")
		t.Setenv("VITE_GEMINI_API_KEY", "dotenv")

		// when
		key, source := commands.ResolveAPIKey("", "")

		// then
		assert.Equal(t, "system", key)
		assert.Equal(t, "env", source)
	})
}
