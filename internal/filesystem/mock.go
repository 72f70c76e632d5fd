package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MockFileSystem provides in-memory filesystem for testing.
// It is safe for concurrent use.
type MockFileSystem struct {
	mu          sync.RWMutex
	files       map[string]*MockFile
	currentDir  string
	writeErrors map[string]error
}

// MockFile represents a file in the mock filesystem
type MockFile struct {
	Content []byte
	Mode    fs.FileMode
	ModTime time.Time
	IsDir   bool
}

// mockFileInfo implements fs.FileInfo
type mockFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (m *mockFileInfo) Name() string       { return m.name }
func (m *mockFileInfo) Size() int64        { return m.size }
func (m *mockFileInfo) Mode() fs.FileMode  { return m.mode }
func (m *mockFileInfo) ModTime() time.Time { return m.modTime }
func (m *mockFileInfo) IsDir() bool        { return m.isDir }
func (m *mockFileInfo) Sys() interface{}   { return nil }

// mockDirEntry implements fs.DirEntry
type mockDirEntry struct {
	info fs.FileInfo
}

func (m *mockDirEntry) Name() string               { return m.info.Name() }
func (m *mockDirEntry) IsDir() bool                { return m.info.IsDir() }
func (m *mockDirEntry) Type() fs.FileMode          { return m.info.Mode().Type() }
func (m *mockDirEntry) Info() (fs.FileInfo, error) { return m.info, nil }

// NewMockFileSystem creates a new MockFileSystem
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:       make(map[string]*MockFile),
		currentDir:  "/workspace",
		writeErrors: make(map[string]error),
	}
}

// AddFile adds a file to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddFile(path string, content []byte) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    0644,
		ModTime: time.Now(),
		IsDir:   false,
	}
	mfs.addParents(cleanPath)
}

// AddDir adds a directory to the mock filesystem, creating parent directories.
func (mfs *MockFileSystem) AddDir(path string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	mfs.addDir(cleanPath)
	mfs.addParents(cleanPath)
}

func (mfs *MockFileSystem) addDir(cleanPath string) {
	if _, exists := mfs.files[cleanPath]; !exists {
		mfs.files[cleanPath] = &MockFile{
			Mode:    0755 | fs.ModeDir,
			ModTime: time.Now(),
			IsDir:   true,
		}
	}
}

func (mfs *MockFileSystem) addParents(cleanPath string) {
	dir := filepath.Dir(cleanPath)
	for dir != "." && dir != "/" && dir != cleanPath {
		mfs.addDir(dir)
		dir = filepath.Dir(dir)
	}
}

// FailWritesIn makes every subsequent WriteFile directly inside dir fail with err.
func (mfs *MockFileSystem) FailWritesIn(dir string, err error) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.writeErrors[filepath.Clean(dir)] = err
}

// parentExists reports whether the parent directory of cleanPath exists.
// Callers must hold the lock.
func (mfs *MockFileSystem) parentExists(cleanPath string) bool {
	dir := filepath.Dir(cleanPath)
	if dir == "." || dir == "/" {
		return true
	}
	parent, exists := mfs.files[dir]
	return exists && parent.IsDir
}

func (mfs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[filepath.Clean(path)]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return nil, errors.New("is a directory")
	}
	return file.Content, nil
}

func (mfs *MockFileSystem) WriteFile(path string, data []byte, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if err, ok := mfs.writeErrors[filepath.Dir(cleanPath)]; ok {
		return &fs.PathError{Op: "open", Path: path, Err: err}
	}
	if !mfs.parentExists(cleanPath) {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	if existing, ok := mfs.files[cleanPath]; ok && existing.IsDir {
		return &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(data))
	copy(content, data)
	mfs.files[cleanPath] = &MockFile{
		Content: content,
		Mode:    perm,
		ModTime: time.Now(),
		IsDir:   false,
	}
	return nil
}

func (mfs *MockFileSystem) Rename(oldPath, newPath string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanOld := filepath.Clean(oldPath)
	cleanNew := filepath.Clean(newPath)
	file, exists := mfs.files[cleanOld]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: fs.ErrNotExist}
	}
	if file.IsDir {
		return &fs.PathError{Op: "rename", Path: oldPath, Err: errors.New("is a directory")}
	}
	if !mfs.parentExists(cleanNew) {
		return &fs.PathError{Op: "rename", Path: newPath, Err: fs.ErrNotExist}
	}
	mfs.files[cleanNew] = file
	delete(mfs.files, cleanOld)
	return nil
}

func (mfs *MockFileSystem) Remove(path string) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if _, exists := mfs.files[cleanPath]; !exists {
		return &fs.PathError{Op: "remove", Path: path, Err: fs.ErrNotExist}
	}
	delete(mfs.files, cleanPath)
	return nil
}

func (mfs *MockFileSystem) ReadDir(path string) ([]fs.DirEntry, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	cleanPath := filepath.Clean(path)

	if cleanPath != "/" {
		file, exists := mfs.files[cleanPath]
		if !exists {
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
		}
		if !file.IsDir {
			return nil, errors.New("not a directory")
		}
	}

	var entries []fs.DirEntry
	for p, f := range mfs.files {
		if p == cleanPath || filepath.Dir(p) != cleanPath {
			continue
		}
		info := &mockFileInfo{
			name:    filepath.Base(p),
			size:    int64(len(f.Content)),
			mode:    f.Mode,
			modTime: f.ModTime,
			isDir:   f.IsDir,
		}
		entries = append(entries, &mockDirEntry{info: info})
	}

	// Sort entries by name for consistent ordering
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	return entries, nil
}

func (mfs *MockFileSystem) Mkdir(path string, perm fs.FileMode) error {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	cleanPath := filepath.Clean(path)
	if cleanPath == "/" || cleanPath == "." {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	if _, exists := mfs.files[cleanPath]; exists {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrExist}
	}
	if !mfs.parentExists(cleanPath) {
		return &fs.PathError{Op: "mkdir", Path: path, Err: fs.ErrNotExist}
	}

	mfs.files[cleanPath] = &MockFile{
		Mode:    perm | fs.ModeDir,
		ModTime: time.Now(),
		IsDir:   true,
	}
	return nil
}

func (mfs *MockFileSystem) Stat(path string) (fs.FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	cleanPath := filepath.Clean(path)
	if cleanPath == "/" {
		return &mockFileInfo{name: "/", mode: 0755 | fs.ModeDir, isDir: true}, nil
	}
	file, exists := mfs.files[cleanPath]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: path, Err: fs.ErrNotExist}
	}

	return &mockFileInfo{
		name:    filepath.Base(path),
		size:    int64(len(file.Content)),
		mode:    file.Mode,
		modTime: file.ModTime,
		isDir:   file.IsDir,
	}, nil
}

func (mfs *MockFileSystem) Exists(path string) bool {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	_, exists := mfs.files[filepath.Clean(path)]
	return exists
}

func (mfs *MockFileSystem) Getwd() (string, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()
	return mfs.currentDir, nil
}

// SetCurrentDir sets the current working directory for the mock
func (mfs *MockFileSystem) SetCurrentDir(dir string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.currentDir = dir
}

// Paths returns every path under root (inclusive), sorted.
func (mfs *MockFileSystem) Paths(root string) []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	cleanRoot := filepath.Clean(root)
	prefix := cleanRoot
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	var paths []string
	for p := range mfs.files {
		if p == cleanRoot || strings.HasPrefix(p, prefix) {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)
	return paths
}

// String renders the filesystem as a sorted listing (for debugging)
func (mfs *MockFileSystem) String() string {
	paths := mfs.Paths("/")

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var b strings.Builder
	for _, p := range paths {
		marker := "f"
		if mfs.files[p].IsDir {
			marker = "d"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, p)
	}
	return b.String()
}
