package writer

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/create-vclight/internal/filesystem"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	filePerm = 0644
	dirPerm  = 0755

	tempAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// Writer writes generated files, creating missing parent directories on
// demand. It is safe for concurrent use, including writers racing to create
// the same directory.
type Writer struct {
	fs filesystem.FileSystem
}

// New creates a Writer on fs.
func New(fs filesystem.FileSystem) *Writer {
	return &Writer{fs: fs}
}

// Write stores content at path. Content goes to a sibling temp file first and
// is renamed into place. When the write fails because a parent directory is
// missing, every missing ancestor is created and the write is retried once.
// Other failures are returned as-is.
func (w *Writer) Write(path string, content []byte) error {
	tmp, err := tempPath(path)
	if err != nil {
		return err
	}

	err = w.fs.WriteFile(tmp, content, filePerm)
	if errors.Is(err, fs.ErrNotExist) {
		if mkErr := w.EnsureDir(filepath.Dir(path)); mkErr != nil {
			return mkErr
		}
		err = w.fs.WriteFile(tmp, content, filePerm)
	}
	if err != nil {
		return err
	}

	if err := w.fs.Rename(tmp, path); err != nil {
		_ = w.fs.Remove(tmp)
		return err
	}
	return nil
}

// EnsureDir creates dir and each missing ancestor, walking the path from the
// root down. A directory that already exists, or that a concurrent writer
// created first, is not an error.
func (w *Writer) EnsureDir(dir string) error {
	for _, prefix := range ancestors(dir) {
		err := w.fs.Mkdir(prefix, dirPerm)
		if err == nil || errors.Is(err, fs.ErrExist) {
			continue
		}
		return fmt.Errorf("failed to create directory %s: %w", prefix, err)
	}
	return nil
}

// ancestors returns the cumulative prefixes of dir, shortest first.
// "/a/b/c" yields "/a", "/a/b", "/a/b/c".
func ancestors(dir string) []string {
	dir = filepath.Clean(dir)
	volume := filepath.VolumeName(dir)
	rest := dir[len(volume):]

	current := volume
	if strings.HasPrefix(rest, string(filepath.Separator)) {
		current += string(filepath.Separator)
	}

	var prefixes []string
	for _, segment := range strings.Split(rest, string(filepath.Separator)) {
		if segment == "" || segment == "." {
			continue
		}
		if current == "" || strings.HasSuffix(current, string(filepath.Separator)) {
			current += segment
		} else {
			current += string(filepath.Separator) + segment
		}
		prefixes = append(prefixes, current)
	}
	return prefixes
}

func tempPath(path string) (string, error) {
	id, err := gonanoid.Generate(tempAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate temp file name: %w", err)
	}
	dir, base := filepath.Split(path)
	return filepath.Join(dir, "."+base+"."+id+".tmp"), nil
}
