package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
	"github.com/rios0rios0/repodigest/internal/domain/repositories"
)

const originRemote = "origin"

// skippedDirs are directory or file names never descended into or read.
var skippedDirs = map[string]struct{}{
	".venv":        {},
	".idea":        {},
	".vscode":      {},
	"node_modules": {},
	"target":       {},
	"venv":         {},
	"build":        {},
	"__pycache__":  {},
}

// ScannerRepository walks a local checkout on disk.
type ScannerRepository struct {
	maxFileSize int64
}

// NewScannerRepository creates a scanner with the default file size ceiling.
func NewScannerRepository() repositories.ScannerRepository {
	return &ScannerRepository{maxFileSize: entities.MaxLocalFileSize}
}

func isSkipped(name string) bool {
	if strings.HasPrefix(name, ".git") {
		return true
	}
	_, ok := skippedDirs[name]
	return ok
}

// Walk returns every readable UTF-8 file under root in lexical order. Paths
// are relative to root and slash separated.
func (s *ScannerRepository) Walk(ctx context.Context, root string) ([]entities.FileEntry, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", root)
	}

	var files []entities.FileEntry
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			logger.Debugf("Skipping %q: %v", path, err)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path != root && isSkipped(d.Name()) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		entry, ok := s.readFile(root, path, d)
		if ok {
			files = append(files, entry)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	logger.Debugf("Scanned %d files under %q", len(files), root)
	return files, nil
}

// readFile never opens secret-looking files such as keys and .env files.
func (s *ScannerRepository) readFile(root, path string, d fs.DirEntry) (entities.FileEntry, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	if entities.IsSecret(rel) {
		logger.Debugf("Skipping secret file %q", rel)
		return entities.FileEntry{}, false
	}

	info, err := d.Info()
	if err != nil || info.Size() > s.maxFileSize {
		return entities.FileEntry{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return entities.FileEntry{}, false
	}
	return entities.FileEntry{Path: rel, Content: string(data)}, true
}

// Checkout reads the origin remote and the checked out branch of the git
// repository containing root.
func (s *ScannerRepository) Checkout(root string) *entities.CheckoutInfo {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if !errors.Is(err, git.ErrRepositoryNotExists) {
			logger.Debugf("Failed to open git repository at %q: %v", root, err)
		}
		return nil
	}

	checkout := &entities.CheckoutInfo{}
	if head, headErr := repo.Head(); headErr == nil && head.Name().IsBranch() {
		checkout.Branch = head.Name().Short()
	}

	remote, err := repo.Remote(originRemote)
	if err != nil {
		logger.Debugf("No %s remote in %q: %v", originRemote, root, err)
		return checkout
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return checkout
	}

	info, err := entities.ParseRemoteURL(urls[0])
	if err != nil {
		logger.Debugf("Ignoring remote %q: %v", urls[0], err)
		return checkout
	}
	checkout.Remote = info
	return checkout
}
