package commands

import (
	"context"
	"fmt"
	"path/filepath"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

// Scan is the interface for the scan command (local directory mode).
type Scan interface {
	Execute(ctx context.Context, root string) (*entities.ScanResult, error)
}

// ScanCommand reads a local checkout into the same file shape remote ingestion uses.
type ScanCommand struct {
	scanner repositories.ScannerRepository
}

// NewScanCommand creates a new ScanCommand.
func NewScanCommand(scanner repositories.ScannerRepository) *ScanCommand {
	return &ScanCommand{scanner: scanner}
}

// Execute walks root and, when it sits inside a recognizable git checkout,
// attaches the repository info of that checkout.
func (it *ScanCommand) Execute(ctx context.Context, root string) (*entities.ScanResult, error) {
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", root, err)
	}

	logger.Infof("Scanning %s", absRoot)
	files, err := it.scanner.Walk(ctx, absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %q: %w", absRoot, err)
	}
	if files == nil {
		files = []entities.FileEntry{}
	}

	result := &entities.ScanResult{Root: absRoot, Files: files}
	if checkout := it.scanner.Checkout(absRoot); checkout != nil && checkout.Remote != nil {
		branch := checkout.Branch
		if branch == "" {
			branch = entities.DefaultBranchName
		}
		result.Info = &entities.RepositoryInfo{
			Owner:         checkout.Remote.Owner,
			Repo:          checkout.Remote.Name,
			DefaultBranch: branch,
			Description:   entities.NoDescription,
		}
		logger.Debugf("Detected %s repository %s/%s", checkout.Remote.ProviderType,
			checkout.Remote.Owner, checkout.Remote.Name)
	}

	logger.Infof("Scanned %d files", len(result.Files))
	return result, nil
}
