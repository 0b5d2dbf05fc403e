//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/commands"
	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// StubScanCommand is a stub implementation of commands.Scan.
type StubScanCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Result           *entities.ScanResult
	LastRoot         string
}

var _ commands.Scan = (*StubScanCommand)(nil)

func (s *StubScanCommand) Execute(_ context.Context, root string) (*entities.ScanResult, error) {
	s.ExecuteCallCount++
	s.LastRoot = root
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Result, nil
}
