package repositories

import (
	"context"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// ScannerRepository reads a local directory tree.
type ScannerRepository interface {
	// Walk returns the readable text files under root, root-relative.
	Walk(ctx context.Context, root string) ([]entities.FileEntry, error)

	// Checkout inspects the git checkout containing root. It returns nil
	// when root is not inside a checkout.
	Checkout(root string) *entities.CheckoutInfo
}
