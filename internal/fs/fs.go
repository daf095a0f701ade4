// Package fs provides filesystem utilities for pagepatch.
package fs

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FS is the filesystem interface used by the patch engine and store.
// It exists so tests can stub filesystem failures deterministically.
type FS interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Stat(path string) (fs.FileInfo, error)
	MkdirAll(path string, perm fs.FileMode) error
	Rename(oldPath, newPath string) error
	Remove(path string) error
}

// RealFS implements FS against the operating system.
type RealFS struct{}

// NewRealFS returns an FS backed by the real filesystem.
func NewRealFS() FS {
	return RealFS{}
}

func (RealFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (RealFS) WriteFile(path string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (RealFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

func (RealFS) MkdirAll(path string, perm fs.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (RealFS) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func (RealFS) Remove(path string) error {
	return os.Remove(path)
}

// WriteFileAtomic writes data to path via a temp file in the same directory
// followed by a rename, so a reader never observes a partial write. The temp
// file is removed on failure.
func WriteFileAtomic(fsys FS, path string, data []byte, perm fs.FileMode) error {
	tmp := path + ".tmp"
	if err := fsys.WriteFile(tmp, data, perm); err != nil {
		return err
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return err
	}
	return nil
}

// IsSubpath returns true if target is a proper subpath of prefix.
// Both paths should already be cleaned. Returns false if target equals
// prefix or is outside prefix.
func IsSubpath(target, prefix string) bool {
	prefixWithSep := prefix
	if !hasSuffixSeparator(prefixWithSep) {
		prefixWithSep = prefix + string(filepath.Separator)
	}
	return len(target) > len(prefix) && target[:len(prefixWithSep)] == prefixWithSep
}

func hasSuffixSeparator(p string) bool {
	return len(p) > 0 && p[len(p)-1] == filepath.Separator
}

// WithinRoot resolves a relative target path against root and reports whether
// the result stays inside root. Guards against ".." traversal in plan files.
func WithinRoot(root, rel string) (string, bool) {
	cleanRoot := filepath.Clean(root)
	joined := filepath.Clean(filepath.Join(cleanRoot, rel))
	if !IsSubpath(joined, cleanRoot) {
		return joined, false
	}
	return joined, true
}
