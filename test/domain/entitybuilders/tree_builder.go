//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"fmt"

	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

// TreeBuilder helps create raw tree listings with a fluent interface.
type TreeBuilder struct {
	*testkit.BaseBuilder
	entries []entities.TreeEntry
}

// NewTreeBuilder creates an empty tree builder.
func NewTreeBuilder() *TreeBuilder {
	return &TreeBuilder{BaseBuilder: testkit.NewBaseBuilder()}
}

// WithBlobs appends file entries.
func (b *TreeBuilder) WithBlobs(paths ...string) *TreeBuilder {
	for _, p := range paths {
		b.entries = append(b.entries, entities.TreeEntry{Path: p, Type: entities.BlobType})
	}
	return b
}

// WithDirs appends directory entries.
func (b *TreeBuilder) WithDirs(paths ...string) *TreeBuilder {
	for _, p := range paths {
		b.entries = append(b.entries, entities.TreeEntry{Path: p, Type: "tree"})
	}
	return b
}

// WithGeneratedBlobs appends count files named like "gen/file-0007.txt".
func (b *TreeBuilder) WithGeneratedBlobs(count int) *TreeBuilder {
	for i := range count {
		b.entries = append(b.entries, entities.TreeEntry{
			Path: fmt.Sprintf("gen/file-%04d.txt", i),
			Type: entities.BlobType,
		})
	}
	return b
}

// Build creates the tree (satisfies testkit.Builder interface).
func (b *TreeBuilder) Build() interface{} {
	return b.BuildTree()
}

// BuildTree creates the tree with a concrete return type.
func (b *TreeBuilder) BuildTree() []entities.TreeEntry {
	out := make([]entities.TreeEntry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Reset clears the builder state, allowing it to be reused.
func (b *TreeBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.entries = nil
	return b
}

// Clone creates a deep copy of the TreeBuilder.
func (b *TreeBuilder) Clone() testkit.Builder {
	entries := make([]entities.TreeEntry, len(b.entries))
	copy(entries, b.entries)
	return &TreeBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		entries:     entries,
	}
}
