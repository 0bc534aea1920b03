// Package filestore provides file storage backends for uploaded profile
// images: local disk and S3-compatible object storage.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// imageDir is the public directory uploaded images live under. The same
// path shape is used as the object key prefix by the S3 backend, so the
// stored reference is portable between the two.
const imageDir = "profile-images"

// LocalStore saves files under a base directory on the local filesystem,
// which an external web server is expected to expose.
type LocalStore struct {
	baseDir string
}

// NewLocalStore creates a store rooted at baseDir.
func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

// Save writes data under the given file name and returns the public path
// of the stored file, e.g. "/profile-images/<name>".
func (s *LocalStore) Save(_ context.Context, name string, data []byte) (string, error) {
	dir := filepath.Join(s.baseDir, imageDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return "/" + imageDir + "/" + name, nil
}

// Delete removes the file at the given public path. Deleting a missing
// file returns an error satisfying errors.Is(err, os.ErrNotExist).
func (s *LocalStore) Delete(_ context.Context, path string) error {
	rel := strings.TrimPrefix(path, "/")
	if rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("refusing to delete path %q", path)
	}
	return os.Remove(filepath.Join(s.baseDir, filepath.FromSlash(rel)))
}
