package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type fileStore struct {
	dir string
}

func NewFile(dir string) (Store, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "data"
	}
	return &fileStore{dir: dir}, nil
}

func (s *fileStore) Init(_ context.Context) error {
	return os.MkdirAll(s.dir, 0o755)
}

func (s *fileStore) Close() error {
	return nil
}

func (s *fileStore) Read(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *fileStore) Write(_ context.Context, name string, data []byte) error {
	path := filepath.Join(s.dir, filepath.Base(name))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
