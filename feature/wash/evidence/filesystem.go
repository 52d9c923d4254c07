package evidence

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemStore keeps photos under a local directory.
type FilesystemStore struct {
	root   string
	prefix string
}

// NewFilesystemStore creates a photo store writing to root/prefix.
func NewFilesystemStore(root, prefix string) *FilesystemStore {
	return &FilesystemStore{root: root, prefix: prefix}
}

func (s *FilesystemStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

func (s *FilesystemStore) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	name := s.prefix + key
	p := s.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", filepath.Dir(p), err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", p, err)
	}
	return name, nil
}

func (s *FilesystemStore) Remove(ctx context.Context, locations ...string) error {
	var errs []error
	for _, name := range locations {
		if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *FilesystemStore) RemoveWeek(ctx context.Context, week string) (int, error) {
	dir := s.path(s.prefix + week)
	count := 0
	err := filepath.WalkDir(dir, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return 0, fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return count, nil
}
