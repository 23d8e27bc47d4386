package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const defaultFileMode = 0o600

// FileStore keeps the list in a JSON file. Writes go through a temp file and
// rename so a crash never leaves a half-written list behind.
type FileStore struct {
	mu   sync.Mutex
	path string
	mode os.FileMode
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string, opts ...FileOption) *FileStore {
	s := &FileStore{path: path, mode: defaultFileMode}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load reads the list; a missing file is an empty list.
func (s *FileStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrStore, s.path, err)
	}
	return decode(b)
}

// Save atomically replaces the file contents.
func (s *FileStore) Save(_ context.Context, ids []string) error {
	b, err := encode(ids)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrStore, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".psych-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp: %w", ErrStore, err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: write: %w", ErrStore, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("%w: sync: %w", ErrStore, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", ErrStore, err)
	}
	if err := os.Chmod(tmp.Name(), s.mode); err != nil {
		return fmt.Errorf("%w: chmod: %w", ErrStore, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: rename: %w", ErrStore, err)
	}
	return nil
}

// Delete removes the file; a missing file is not an error.
func (s *FileStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: remove %s: %w", ErrStore, s.path, err)
	}
	return nil
}
