package models

import (
	"path/filepath"
	"strings"
)

// NodeKind tags a TreeNode as a directory or one of the two file variants.
type NodeKind int

const (
	NodeDirectory NodeKind = iota
	// NodeLiteral files are copied byte-for-byte
	NodeLiteral
	// NodeDirective files are rendered against the render context
	NodeDirective
)

// DirectiveExtension marks a template file as a directive template.
const DirectiveExtension = ".tmpl"

func (k NodeKind) String() string {
	switch k {
	case NodeDirectory:
		return "directory"
	case NodeLiteral:
		return "literal"
	case NodeDirective:
		return "directive"
	default:
		return "unknown"
	}
}

// TreeNode is one entry of a scanned template tree.
type TreeNode struct {
	// Path is the source path of the entry
	Path string

	// Title is the base name
	Title string

	// Depth is the number of directory segments between the node and the
	// tree root; it always equals len(Segments)-1 (the root itself is 0).
	Depth int

	Kind NodeKind

	// Extension is the file extension including the dot, possibly empty
	Extension string

	// Segments is the path relative to the tree root
	Segments []string

	// Content holds the raw bytes of file nodes
	Content []byte

	// Children holds directory entries in listing order
	Children []*TreeNode
}

// IsDir reports whether the node is a directory.
func (n *TreeNode) IsDir() bool {
	return n.Kind == NodeDirectory
}

// RelPath returns the node's path relative to the tree root.
func (n *TreeNode) RelPath() string {
	return filepath.Join(n.Segments...)
}

// OutputPath returns the relative destination path, with the directive
// extension stripped from directive templates.
func (n *TreeNode) OutputPath() string {
	rel := n.RelPath()
	if n.Kind == NodeDirective {
		return strings.TrimSuffix(rel, DirectiveExtension)
	}
	return rel
}
