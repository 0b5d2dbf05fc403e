//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// StubScannerRepository implements repositories.ScannerRepository with canned results.
type StubScannerRepository struct {
	Files        []entities.FileEntry
	WalkErr      error
	CheckoutInfo *entities.CheckoutInfo
	WalkedRoots  []string
}

var _ repositories.ScannerRepository = (*StubScannerRepository)(nil)

func (s *StubScannerRepository) Walk(_ context.Context, root string) ([]entities.FileEntry, error) {
	s.WalkedRoots = append(s.WalkedRoots, root)
	return s.Files, s.WalkErr
}

func (s *StubScannerRepository) Checkout(_ string) *entities.CheckoutInfo {
	return s.CheckoutInfo
}
