package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLocalURLPrefix is used when the configured prefix is empty or "/",
// which would otherwise mount uploads over the site root.
const DefaultLocalURLPrefix = "/uploads"

// LocalStore writes files below dir; they are served under urlPrefix.
type LocalStore struct {
	dir       string
	urlPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	prefix := DefaultLocalURLPrefix
	if trimmed := strings.Trim(urlPrefix, "/ "); trimmed != "" {
		prefix = "/" + trimmed
	}
	return &LocalStore{dir: dir, urlPrefix: prefix}, nil
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	clean := filepath.Clean("/" + key)
	path := filepath.Join(s.dir, filepath.FromSlash(clean))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write upload: %w", err)
	}

	return s.urlPrefix + filepath.ToSlash(clean), nil
}

func (s *LocalStore) Kind() string {
	return KindLocal
}

func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) URLPrefix() string {
	return s.urlPrefix
}
