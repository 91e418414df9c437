package ioutils

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore reads and writes package files on the local file system.
//
// FileStore is stateless and safe for concurrent use; concurrent writers
// of the same path are not coordinated.
type FileStore struct{}

// NewFileStore creates a new FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// WriteFile writes data to a file, creating it and its parent directories
// if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
//
// Example:
//
//	err := store.WriteFile(ctx, "/packages/lato/index.css", []byte(css))
func (s *FileStore) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Exists reports whether path exists.
func (s *FileStore) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadJSON decodes the JSON document at path into v.
//
// A missing file is reported with an error satisfying os.IsNotExist.
func (s *FileStore) ReadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates path and its parents.
func (s *FileStore) EnsureDir(path string) error {
	return EnsureDir(path)
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned.
//
// Example:
//
//	err := EnsureDir("/packages/roboto/files")
//	// Creates /packages, /packages/roboto, and /packages/roboto/files if needed
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
