package ports

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSystem provides file system operations.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Exists(path string) bool
	IsSymlink(path string) (isLink bool, target string)
	CreateSymlink(target, link string) error
	Remove(path string) error
	MkdirAll(path string, perm os.FileMode) error
	ListDir(path string) ([]string, error)
	IsDir(path string) bool
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// MockFileSystem is an in-memory FileSystem for tests.
type MockFileSystem struct {
	files    map[string][]byte
	perms    map[string]os.FileMode
	dirs     map[string]bool
	symlinks map[string]string
}

// NewMockFileSystem creates a new MockFileSystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		files:    make(map[string][]byte),
		perms:    make(map[string]os.FileMode),
		dirs:     make(map[string]bool),
		symlinks: make(map[string]string),
	}
}

// ReadFile returns the stored contents for path.
func (fs *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if target, ok := fs.symlinks[path]; ok {
		path = target
	}
	data, ok := fs.files[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return data, nil
}

// WriteFile stores data at path.
func (fs *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	fs.files[path] = append([]byte(nil), data...)
	fs.perms[path] = perm
	return nil
}

// Exists checks whether a file, directory, or symlink exists at path.
func (fs *MockFileSystem) Exists(path string) bool {
	if _, ok := fs.files[path]; ok {
		return true
	}
	if _, ok := fs.symlinks[path]; ok {
		return true
	}
	return fs.dirs[path]
}

// IsSymlink reports whether path is a symlink and its target.
func (fs *MockFileSystem) IsSymlink(path string) (bool, string) {
	target, ok := fs.symlinks[path]
	return ok, target
}

// CreateSymlink records a symlink from link to target.
func (fs *MockFileSystem) CreateSymlink(target, link string) error {
	if fs.Exists(link) {
		return &os.PathError{Op: "symlink", Path: link, Err: os.ErrExist}
	}
	fs.symlinks[link] = target
	return nil
}

// Remove deletes a file, symlink, or empty directory.
func (fs *MockFileSystem) Remove(path string) error {
	if _, ok := fs.files[path]; ok {
		delete(fs.files, path)
		delete(fs.perms, path)
		return nil
	}
	if _, ok := fs.symlinks[path]; ok {
		delete(fs.symlinks, path)
		return nil
	}
	if fs.dirs[path] {
		delete(fs.dirs, path)
		return nil
	}
	return &os.PathError{Op: "remove", Path: path, Err: os.ErrNotExist}
}

// MkdirAll records a directory and its parents.
func (fs *MockFileSystem) MkdirAll(path string, _ os.FileMode) error {
	for p := path; p != "/" && p != "."; p = filepath.Dir(p) {
		fs.dirs[p] = true
	}
	return nil
}

// ListDir returns the names of entries directly under path, sorted.
func (fs *MockFileSystem) ListDir(path string) ([]string, error) {
	if !fs.dirs[path] {
		return nil, fmt.Errorf("not a directory: %s", path)
	}
	seen := make(map[string]bool)
	collect := func(p string) {
		if filepath.Dir(p) == path {
			seen[filepath.Base(p)] = true
		}
	}
	for p := range fs.files {
		collect(p)
	}
	for p := range fs.symlinks {
		collect(p)
	}
	for p := range fs.dirs {
		collect(p)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// IsDir reports whether path is a recorded directory.
func (fs *MockFileSystem) IsDir(path string) bool {
	return fs.dirs[path]
}

// Perm returns the mode a file was written with.
func (fs *MockFileSystem) Perm(path string) os.FileMode {
	return fs.perms[path]
}

// Ensure MockFileSystem implements FileSystem.
var _ FileSystem = (*MockFileSystem)(nil)
