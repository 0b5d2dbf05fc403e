//go:build unit

package commands_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
	doubles "github.com/rios0rios0/repodigest/test/infrastructure/repositorydoubles"
)

func TestScanCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should return files and checkout info", func(t *testing.T) {
		t.Parallel()

		// given
		root := t.TempDir()
		stub := &doubles.StubScannerRepository{
			Files: []entities.FileEntry{{Path: "main.go", Content: "package main"}},
			CheckoutInfo: &entities.CheckoutInfo{
				Remote: &entities.RemoteInfo{ProviderType: "github", Owner: "acme", Name: "widget"},
				Branch: "develop",
			},
		}
		cmd := commands.NewScanCommand(stub)

		// when
		result, err := cmd.Execute(context.Background(), root)

		// then
		require.NoError(t, err)
		assert.Equal(t, root, result.Root)
		assert.Equal(t, stub.Files, result.Files)
		require.NotNil(t, result.Info)
		assert.Equal(t, entities.RepositoryInfo{
			Owner: "acme", Repo: "widget", DefaultBranch: "develop", Description: entities.NoDescription,
		}, *result.Info)
	})

	t.Run("should leave info empty outside a recognizable checkout", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &doubles.StubScannerRepository{CheckoutInfo: &entities.CheckoutInfo{Branch: "main"}}
		cmd := commands.NewScanCommand(stub)

		// when
		result, err := cmd.Execute(context.Background(), t.TempDir())

		// then
		require.NoError(t, err)
		assert.Nil(t, result.Info)
		assert.NotNil(t, result.Files)
		assert.Empty(t, result.Files)
	})

	t.Run("should resolve a relative root", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &doubles.StubScannerRepository{}
		cmd := commands.NewScanCommand(stub)

		// when
		result, err := cmd.Execute(context.Background(), "")

		// then
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(result.Root))
		assert.Equal(t, []string{result.Root}, stub.WalkedRoots)
	})

	t.Run("should wrap a walk failure", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &doubles.StubScannerRepository{WalkErr: errors.New("permission denied")}
		cmd := commands.NewScanCommand(stub)

		// when
		_, err := cmd.Execute(context.Background(), t.TempDir())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "permission denied")
	})
}
