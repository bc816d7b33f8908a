package storage

import (
	"context"
	"os"
	"path/filepath"
)

// FileSlot keeps the board document in a local JSON file. It is the default
// for single-node deployments and local development.
type FileSlot struct {
	path string
}

// NewFileSlot creates a slot at the given path. Parent directories are
// created on first save.
func NewFileSlot(path string) *FileSlot {
	return &FileSlot{path: path}
}

func (s *FileSlot) Load(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// Save writes through a temp file and renames so a crash mid-write never
// leaves a truncated document behind.
func (s *FileSlot) Save(_ context.Context, data []byte) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileSlot) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
