package tree

import (
	"path/filepath"

	"github.com/jakoblorz/create-vclight/internal/filesystem"
)

// TreeBuilder helps create template trees for tests
type TreeBuilder struct {
	fs   *filesystem.MockFileSystem
	root string
}

// NewTreeBuilder creates a TreeBuilder rooted at root on a fresh mock filesystem
func NewTreeBuilder(root string) *TreeBuilder {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir(root)

	return &TreeBuilder{
		fs:   fs,
		root: root,
	}
}

// AddFile adds a file at a slash-separated path relative to the root
func (tb *TreeBuilder) AddFile(rel, content string) *TreeBuilder {
	tb.fs.AddFile(filepath.Join(tb.root, filepath.FromSlash(rel)), []byte(content))
	return tb
}

// AddDir adds an (empty) directory relative to the root
func (tb *TreeBuilder) AddDir(rel string) *TreeBuilder {
	tb.fs.AddDir(filepath.Join(tb.root, filepath.FromSlash(rel)))
	return tb
}

// Root returns the tree root path
func (tb *TreeBuilder) Root() string {
	return tb.root
}

// Build returns the mock filesystem holding the tree
func (tb *TreeBuilder) Build() *filesystem.MockFileSystem {
	return tb.fs
}
