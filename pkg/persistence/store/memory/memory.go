// Package memory is a map-backed store for state that only has to live
// as long as the process, like the override table.
package memory

import (
	"fmt"
	"sync"

	"github.com/browsekit/navigator/pkg/persistence"
)

type Store[T any] struct {
	mu   sync.RWMutex
	data map[string]T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		data: make(map[string]T),
	}
}

func (s *Store[T]) Save(key string, data T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *Store[T]) Load(key string) (T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, exist := s.data[key]
	if !exist {
		var zero T
		return zero, fmt.Errorf("%w: %s", persistence.ErrKeyNotFound, key)
	}
	return val, nil
}

func (s *Store[T]) LoadAll() ([]T, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]T, 0, len(s.data))
	for _, val := range s.data {
		result = append(result, val)
	}
	return result, nil
}

// no error when the key is absent, a delete of nothing is still a delete
func (s *Store[T]) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *Store[T]) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]T)
	return nil
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store[T]) Close() error {
	return nil
}
