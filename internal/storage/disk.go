package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStorage writes physical files under a mounted share directory and
// records them with a configurable URI scheme (e.g. share://<name>).
type DiskStorage struct {
	path   string
	scheme string
}

func NewDiskStorage(path, scheme string) (*DiskStorage, error) {
	if path == "" {
		return nil, fmt.Errorf("storage path missing")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("storage path ensure: %w", err)
	}
	return &DiskStorage{path: path, scheme: scheme}, nil
}

func (s *DiskStorage) Write(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	target := filepath.Join(s.path, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return s.scheme + name, nil
}
