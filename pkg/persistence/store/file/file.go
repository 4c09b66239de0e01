package file

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// JSON-array backed list store. The whole document is rewritten on every Save,
// which is fine for the small collections this is used for (bookmarks).
type Store[T any] struct {
	lock sync.RWMutex
	path string
}

func NewStore[T any](path string) *Store[T] {
	return &Store[T]{
		lock: sync.RWMutex{},
		path: path,
	}
}

func (s *Store[T]) Save(items []T) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal items for storage file: %s: %w", s.path, err)
	}

	// write to a temp file first, so a crash mid-write cannot truncate the document
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write storage file: %s: %w", s.path, err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %s: %w", s.path, err)
	}

	return nil
}

func (s *Store[T]) Load() ([]T, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoDocument, s.path)
		}
		return nil, fmt.Errorf("failed to read storage file: %s: %w", s.path, err)
	}

	items := make([]T, 0)
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse storage file: %s: %w", s.path, err)
	}

	return items, nil
}

func (s *Store[T]) Path() string {
	return filepath.Clean(s.path)
}
