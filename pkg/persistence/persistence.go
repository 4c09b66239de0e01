package persistence

import "errors"

// returned by stores when a key has no entry
var ErrKeyNotFound = errors.New("key not found")

// Repository is the key-addressed contract the override table satisfies.
// Create replaces an existing entry, Delete of an absent key is a no-op.
type Repository[T any] interface {
	Create(entry T) error
	Read(key string) (T, error)
	ReadAll() ([]T, error)
	Delete(key string) error
	Clear() error
}

type Store[T any] interface {
	Save(key string, data T) error
	Load(key string) (T, error)
	LoadAll() ([]T, error)
	Delete(key string) error
	Clear() error
}

// stores a whole ordered collection at once, for list-shaped documents (e.g. the bookmarks file)
type ListStore[T any] interface {
	Save(items []T) error
	Load() ([]T, error)
}
