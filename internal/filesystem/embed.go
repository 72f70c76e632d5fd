package filesystem

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"
)

// FSReader exposes an fs.FS (typically an embed.FS) through ReadOnly.
// Paths are accepted in OS form and translated to the slash-separated,
// unrooted names fs.FS expects.
type FSReader struct {
	fsys fs.FS
}

// NewFSReader wraps fsys.
func NewFSReader(fsys fs.FS) *FSReader {
	return &FSReader{fsys: fsys}
}

func (r *FSReader) name(p string) string {
	name := path.Clean(strings.TrimPrefix(filepath.ToSlash(p), "/"))
	if name == "" {
		return "."
	}
	return name
}

func (r *FSReader) ReadFile(p string) ([]byte, error) {
	return fs.ReadFile(r.fsys, r.name(p))
}

func (r *FSReader) ReadDir(p string) ([]fs.DirEntry, error) {
	return fs.ReadDir(r.fsys, r.name(p))
}

func (r *FSReader) Stat(p string) (fs.FileInfo, error) {
	return fs.Stat(r.fsys, r.name(p))
}

func (r *FSReader) Exists(p string) bool {
	_, err := r.Stat(p)
	return err == nil
}
