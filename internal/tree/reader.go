package tree

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
	"github.com/jakoblorz/create-vclight/internal/filesystem"
	"github.com/jakoblorz/create-vclight/internal/models"
)

// IgnoreFile lists tree entries (gitignore syntax) that are never scaffolded.
const IgnoreFile = ".scaffoldignore"

// Reader scans template directories into TreeNode graphs.
type Reader struct {
	fs filesystem.ReadOnly
}

// NewReader creates a Reader over fs.
func NewReader(fs filesystem.ReadOnly) *Reader {
	return &Reader{fs: fs}
}

// Read scans sourceDir recursively. Children keep the order the filesystem
// lists them in. File contents are loaded and every file is tagged as a
// literal or a directive template.
func (r *Reader) Read(sourceDir string) (*models.TreeNode, error) {
	info, err := r.fs.Stat(sourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template directory %s: %w", sourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template source %s is not a directory", sourceDir)
	}

	ignore, err := r.loadIgnore(sourceDir)
	if err != nil {
		return nil, err
	}

	root := &models.TreeNode{
		Path:  sourceDir,
		Title: filepath.Base(sourceDir),
		Depth: 0,
		Kind:  models.NodeDirectory,
	}
	if err := r.readDir(root, ignore); err != nil {
		return nil, err
	}
	return root, nil
}

func (r *Reader) readDir(dir *models.TreeNode, ignore gitignore.GitIgnore) error {
	entries, err := r.fs.ReadDir(dir.Path)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir.Path, err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if len(dir.Segments) == 0 && name == IgnoreFile {
			continue
		}

		segments := make([]string, len(dir.Segments)+1)
		copy(segments, dir.Segments)
		segments[len(dir.Segments)] = name

		if ignore != nil {
			rel := strings.Join(segments, "/")
			if match := ignore.Relative(rel, entry.IsDir()); match != nil && match.Ignore() {
				continue
			}
		}

		node := &models.TreeNode{
			Path:     filepath.Join(dir.Path, name),
			Title:    name,
			Depth:    len(segments) - 1,
			Segments: segments,
		}

		if entry.IsDir() {
			node.Kind = models.NodeDirectory
			if err := r.readDir(node, ignore); err != nil {
				return err
			}
			dir.Children = append(dir.Children, node)
			continue
		}

		content, err := r.fs.ReadFile(node.Path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", node.Path, err)
		}
		node.Content = content
		node.Extension = filepath.Ext(name)
		node.Kind = models.NodeLiteral
		if node.Extension == models.DirectiveExtension {
			node.Kind = models.NodeDirective
		}
		dir.Children = append(dir.Children, node)
	}

	return nil
}

func (r *Reader) loadIgnore(root string) (gitignore.GitIgnore, error) {
	ignorePath := filepath.Join(root, IgnoreFile)
	if !r.fs.Exists(ignorePath) {
		return nil, nil
	}

	data, err := r.fs.ReadFile(ignorePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFile, err)
	}

	return gitignore.New(bytes.NewReader(data), root, nil), nil
}

// WalkFunc is called for every node visited by Walk.
type WalkFunc func(node *models.TreeNode) error

// Walk visits root and its descendants depth-first, parents before children,
// siblings in stored order. It stops at the first error.
func Walk(root *models.TreeNode, fn WalkFunc) error {
	if err := fn(root); err != nil {
		return err
	}
	for _, child := range root.Children {
		if err := Walk(child, fn); err != nil {
			return err
		}
	}
	return nil
}

// Files returns every file node under root in traversal order.
func Files(root *models.TreeNode) []*models.TreeNode {
	var files []*models.TreeNode
	_ = Walk(root, func(node *models.TreeNode) error {
		if !node.IsDir() {
			files = append(files, node)
		}
		return nil
	})
	return files
}
