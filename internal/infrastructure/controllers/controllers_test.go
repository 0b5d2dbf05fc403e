//go:build unit

package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/infrastructure/controllers"
	"github.com/rios0rios0/repodigest/test/domain/commanddoubles"
)

type flagAdder interface {
	AddFlags(cmd *cobra.Command)
}

// newCommand builds a cobra command the way main wires a controller, with an
// empty config file so auto-detection never picks up the developer's setup.
func newCommand(t *testing.T, ctrl entities.Controller) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	configPath := filepath.Join(t.TempDir(), "repodigest.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("ingest:\n  max_files: 7\n"), 0o600))

	cmd := &cobra.Command{Use: ctrl.GetBind().Use}
	cmd.Flags().String("config", configPath, "")
	cmd.Flags().Bool("verbose", false, "")
	if fa, ok := ctrl.(flagAdder); ok {
		fa.AddFlags(cmd)
	}
	cmd.SetContext(context.Background())

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	return cmd, out
}

func TestIngestController(t *testing.T) {
	t.Parallel()

	t.Run("should pass parsed coordinates and configured max files", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{Result: &entities.IngestionResult{
			Info: entities.RepositoryInfo{Owner: "acme", Repo: "widget"},
			Tree: []string{"main.go"},
		}}
		ctrl := controllers.NewIngestController(stub)
		cmd, out := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("branch", "develop"))

		// when
		err := ctrl.Execute(cmd, []string{"acme/widget"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, entities.Repository{Owner: "acme", Name: "widget", Branch: "develop"}, stub.LastOpts.Repository)
		assert.Equal(t, 7, stub.LastOpts.MaxFiles)

		var decoded entities.IngestionResult
		require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, []string{"main.go"}, decoded.Tree)
	})

	t.Run("should prefer the max-files flag and detect the provider from a URL", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{Result: &entities.IngestionResult{}}
		ctrl := controllers.NewIngestController(stub)
		cmd, _ := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("max-files", "12"))

		// when
		err := ctrl.Execute(cmd, []string{"https://gitlab.com/acme/widget.git"})

		// then
		require.NoError(t, err)
		assert.Equal(t, 12, stub.LastOpts.MaxFiles)
		assert.Equal(t, entities.ProviderGitLab, stub.LastOpts.Provider)
	})

	t.Run("should render YAML when requested", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{Result: &entities.IngestionResult{Readme: "hello"}}
		ctrl := controllers.NewIngestController(stub)
		cmd, out := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("format", "yaml"))

		// when
		err := ctrl.Execute(cmd, []string{"acme/widget"})

		// then
		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		assert.Equal(t, "hello", decoded["readme"])
	})

	t.Run("should write to the output file", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{Result: &entities.IngestionResult{Readme: "hello"}}
		ctrl := controllers.NewIngestController(stub)
		cmd, out := newCommand(t, ctrl)
		target := filepath.Join(t.TempDir(), "bundle.json")
		require.NoError(t, cmd.Flags().Set("output", target))

		// when
		err := ctrl.Execute(cmd, []string{"acme/widget"})

		// then
		require.NoError(t, err)
		assert.Empty(t, out.String())
		data, readErr := os.ReadFile(target)
		require.NoError(t, readErr)
		assert.Contains(t, string(data), `"readme": "hello"`)
	})

	t.Run("should reject an unknown output format", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{Result: &entities.IngestionResult{}}
		ctrl := controllers.NewIngestController(stub)
		cmd, _ := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("format", "xml"))

		// when
		err := ctrl.Execute(cmd, []string{"acme/widget"})

		// then
		var cfgErr *entities.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, "format", cfgErr.Setting)
	})

	t.Run("should reject a malformed repository without calling the command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubIngestCommand{}
		ctrl := controllers.NewIngestController(stub)
		cmd, _ := newCommand(t, ctrl)

		// when
		err := ctrl.Execute(cmd, []string{"widget"})

		// then
		var cfgErr *entities.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Zero(t, stub.ExecuteCallCount)
	})
}

func TestScanController(t *testing.T) {
	t.Parallel()

	t.Run("should default the root and print the files", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubScanCommand{Result: &entities.ScanResult{
			Root:  "/tmp/project",
			Files: []entities.FileEntry{{Path: "main.go", Content: "package main"}},
		}}
		ctrl := controllers.NewScanController(stub)
		cmd, out := newCommand(t, ctrl)

		// when
		err := ctrl.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Equal(t, ".", stub.LastRoot)
		assert.Contains(t, out.String(), `"path": "main.go"`)
	})

	t.Run("should pass the given path", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubScanCommand{Result: &entities.ScanResult{}}
		ctrl := controllers.NewScanController(stub)
		cmd, _ := newCommand(t, ctrl)

		// when
		err := ctrl.Execute(cmd, []string{"/srv/checkout"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "/srv/checkout", stub.LastRoot)
	})
}

func TestGenerateController(t *testing.T) {
	t.Parallel()

	t.Run("should join arguments into the prompt and print the text", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubGenerateCommand{Response: "a summary"}
		ctrl := controllers.NewGenerateController(stub)
		cmd, out := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("model", "gemini-2.5-pro"))

		// when
		err := ctrl.Execute(cmd, []string{"summarize", "this"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "summarize this", stub.LastOpts.Prompt)
		assert.Equal(t, "gemini-2.5-pro", stub.LastOpts.Model)
		assert.Equal(t, "a summary\n", out.String())
	})

	t.Run("should read the prompt from stdin", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubGenerateCommand{Response: "ok"}
		ctrl := controllers.NewGenerateController(stub)
		cmd, _ := newCommand(t, ctrl)
		cmd.SetIn(strings.NewReader("piped bundle"))

		// when
		err := ctrl.Execute(cmd, []string{"-"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "piped bundle", stub.LastOpts.Prompt)
	})

	t.Run("should print the key source without generating", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubGenerateCommand{Source: "env:GEMI...wxyz"}
		ctrl := controllers.NewGenerateController(stub)
		cmd, out := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("key-source", "true"))

		// when
		err := ctrl.Execute(cmd, nil)

		// then
		require.NoError(t, err)
		assert.Zero(t, stub.ExecuteCallCount)
		assert.Equal(t, "env:GEMI...wxyz\n", out.String())
	})
}

func TestLocalController(t *testing.T) {
	t.Parallel()

	t.Run("should print the server status", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubLocalModelCommand{
			StatusResult: entities.LocalModelStatus{BaseURL: "http://localhost:11434", Reachable: true},
		}
		ctrl := controllers.NewLocalController(stub)
		cmd, out := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("url", "http://gpu-box:11434"))

		// when
		err := ctrl.Execute(cmd, []string{"status"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "http://gpu-box:11434", stub.LastBaseURL)
		var status entities.LocalModelStatus
		require.NoError(t, json.Unmarshal(out.Bytes(), &status))
		assert.True(t, status.Reachable)
	})

	t.Run("should list the models", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubLocalModelCommand{ModelNames: []string{"llama3", "mistral"}}
		ctrl := controllers.NewLocalController(stub)
		cmd, out := newCommand(t, ctrl)

		// when
		err := ctrl.Execute(cmd, []string{"models"})

		// then
		require.NoError(t, err)
		var names []string
		require.NoError(t, json.Unmarshal(out.Bytes(), &names))
		assert.Equal(t, []string{"llama3", "mistral"}, names)
	})

	t.Run("should pass only the tuning flags that were set", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubLocalModelCommand{Response: "local answer"}
		ctrl := controllers.NewLocalController(stub)
		cmd, out := newCommand(t, ctrl)
		require.NoError(t, cmd.Flags().Set("model", "llama3"))
		require.NoError(t, cmd.Flags().Set("num-ctx", "4096"))

		// when
		err := ctrl.Execute(cmd, []string{"generate", "explain", "this"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "explain this", stub.LastOpts.Prompt)
		assert.Equal(t, "llama3", stub.LastOpts.Model)
		require.NotNil(t, stub.LastOpts.NumCtx)
		assert.Equal(t, 4096, *stub.LastOpts.NumCtx)
		assert.Nil(t, stub.LastOpts.NumPredict)
		assert.Nil(t, stub.LastOpts.Temperature)
		assert.Equal(t, "local answer\n", out.String())
	})

	t.Run("should print the embedding read from stdin", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubLocalModelCommand{Embedding: []float32{0.5, 1}}
		ctrl := controllers.NewLocalController(stub)
		cmd, out := newCommand(t, ctrl)
		cmd.SetIn(strings.NewReader("some code"))

		// when
		err := ctrl.Execute(cmd, []string{"embed", "-"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "some code", stub.LastOpts.Prompt)
		var vector []float32
		require.NoError(t, json.Unmarshal(out.Bytes(), &vector))
		assert.Equal(t, []float32{0.5, 1}, vector)
	})

	t.Run("should reject an unknown action", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubLocalModelCommand{}
		ctrl := controllers.NewLocalController(stub)
		cmd, _ := newCommand(t, ctrl)

		// when
		err := ctrl.Execute(cmd, []string{"pull"})

		// then
		var cfgErr *entities.ConfigurationError
		require.ErrorAs(t, err, &cfgErr)
		assert.Zero(t, stub.CallCount)
	})
}

func TestNewControllers(t *testing.T) {
	t.Parallel()

	t.Run("should expose every subcommand", func(t *testing.T) {
		t.Parallel()

		// given
		ingest := &commanddoubles.StubIngestCommand{}
		scan := &commanddoubles.StubScanCommand{}
		generate := &commanddoubles.StubGenerateCommand{}
		local := &commanddoubles.StubLocalModelCommand{}

		// when
		list := controllers.NewControllers(
			controllers.NewIngestController(ingest),
			controllers.NewScanController(scan),
			controllers.NewGenerateController(generate),
			controllers.NewLocalController(local),
			controllers.NewServeController(ingest, scan, generate, local),
		)

		// then
		uses := make([]string, 0, len(*list))
		for _, c := range *list {
			uses = append(uses, strings.Fields(c.GetBind().Use)[0])
		}
		assert.Equal(t, []string{"ingest", "scan", "generate", "local", "serve"}, uses)
	})
}
