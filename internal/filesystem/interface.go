package filesystem

import (
	"io/fs"
)

// ReadOnly is the subset of FileSystem needed to scan a template tree.
type ReadOnly interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
}

// FileSystem provides an abstraction over file operations for testability
type FileSystem interface {
	ReadOnly

	// File operations
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error

	// Directory operations
	Mkdir(path string, perm fs.FileMode) error

	// Path operations
	Getwd() (string, error)
}
