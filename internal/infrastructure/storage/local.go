package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore keeps assets as plain files in one directory, the same layout
// the API serves back as static /uploads content.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory %s: %w", dir, err)
	}
	return &LocalStore{dir: dir}, nil
}

// Dir returns the backing directory, for static file serving.
func (s *LocalStore) Dir() string {
	return s.dir
}

// Save writes to a temp file first and renames into place, so a failed write
// never leaves a partial file visible under the returned key.
func (s *LocalStore) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	key := newAssetKey(originalName)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("failed to stage asset: %w", err)
	}

	if _, err := io.Copy(tmp, content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write asset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write asset: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, key)); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store asset %s: %w", key, err)
	}

	return key, nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) (bool, error) {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to delete asset %s: %w", key, err)
	}
	return true, nil
}

func (s *LocalStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat asset %s: %w", key, err)
	}
	return true, nil
}

func (s *LocalStore) List(ctx context.Context) ([]AssetInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	var assets []AssetInfo
	for _, entry := range entries {
		// Temp files from in-progress saves are not assets.
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		assets = append(assets, AssetInfo{Key: entry.Name(), ModTime: info.ModTime()})
	}

	return assets, nil
}

var _ AssetStore = (*LocalStore)(nil)
