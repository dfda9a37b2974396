package mocks

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/user/gifatlas/pkg/ports"
)

// FileSystem is an in-memory ports.FileSystem. Paths are cleaned before use,
// and a directory exists once it was created with MkdirAll or holds a file.
// Each XxxFunc field, when set, replaces the in-memory behaviour of Xxx so a
// test can inject failures.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool

	ReadFileFunc  func(path string) ([]byte, error)
	WriteFileFunc func(path string, data []byte) error
	MkdirAllFunc  func(path string) error
	ExistsFunc    func(path string) (bool, error)
	IsDirFunc     func(path string) (bool, error)
	ListFilesFunc func(root string) ([]string, error)
	RemoveFunc    func(path string) error
}

// NewFileSystem returns an empty FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileFunc != nil {
		return m.ReadFileFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if data, ok := m.files[filepath.Clean(path)]; ok {
		return data, nil
	}
	return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
}

func (m *FileSystem) WriteFile(path string, data []byte) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(path, data)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[filepath.Clean(path)] = data
	return nil
}

func (m *FileSystem) MkdirAll(path string) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[filepath.Clean(path)] = true
	return nil
}

func (m *FileSystem) Exists(path string) (bool, error) {
	if m.ExistsFunc != nil {
		return m.ExistsFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	path = filepath.Clean(path)
	if _, ok := m.files[path]; ok {
		return true, nil
	}
	return m.isDir(path), nil
}

func (m *FileSystem) IsDir(path string) (bool, error) {
	if m.IsDirFunc != nil {
		return m.IsDirFunc(path)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.isDir(filepath.Clean(path)), nil
}

// ListFiles returns the stored files below root, sorted.
func (m *FileSystem) ListFiles(root string) ([]string, error) {
	if m.ListFilesFunc != nil {
		return m.ListFilesFunc(root)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	root = filepath.Clean(root)
	if !m.isDir(root) {
		return nil, fmt.Errorf("lstat %s: %w", root, os.ErrNotExist)
	}
	var files []string
	for path := range m.files {
		if within(root, path) {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (m *FileSystem) Remove(path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	path = filepath.Clean(path)
	delete(m.files, path)
	delete(m.dirs, path)
	return nil
}

// GetFile returns what was last written to path, bypassing ReadFileFunc.
func (m *FileSystem) GetFile(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.files[filepath.Clean(path)]
	return data, ok
}

// Paths returns the paths of all stored files, sorted. Tests use it to
// assert that nothing, or nothing else, was written.
func (m *FileSystem) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.files))
	for path := range m.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// isDir reports whether path was created as a directory or contains a file.
// The caller holds m.mu.
func (m *FileSystem) isDir(path string) bool {
	if m.dirs[path] {
		return true
	}
	for file := range m.files {
		if within(path, file) {
			return true
		}
	}
	for dir := range m.dirs {
		if within(path, dir) {
			return true
		}
	}
	return false
}

// within reports whether path lies strictly below dir.
func within(dir, path string) bool {
	if dir == "." {
		return path != "." && !filepath.IsAbs(path) && !strings.HasPrefix(path, "..")
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}

var _ ports.FileSystem = (*FileSystem)(nil)
