// Package storage persists uploaded material files on the local disk.
// Files are stored under a configured root with uuid names so original
// filenames never touch the filesystem; the original name lives on the
// material document.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local is a directory-backed file store.
type Local struct {
	root string
}

// NewLocal ensures the root directory exists and returns the store.
func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is empty")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{root: root}, nil
}

// Save writes the upload under a fresh uuid name, keeping the original
// extension, and returns the relative storage path.
func (l *Local) Save(src io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(l.root, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write file: %w", err)
	}
	return name, nil
}

// Open opens a stored file for reading.
func (l *Local) Open(path string) (*os.File, error) {
	// Stored paths are uuid names; reject anything that tries to escape.
	if path != filepath.Base(path) {
		return nil, fmt.Errorf("invalid storage path")
	}
	return os.Open(filepath.Join(l.root, path))
}

// Remove deletes a stored file. A missing file is not an error: deletes
// are re-runnable.
func (l *Local) Remove(path string) error {
	if path == "" {
		return nil
	}
	if path != filepath.Base(path) {
		return fmt.Errorf("invalid storage path")
	}
	err := os.Remove(filepath.Join(l.root, path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
