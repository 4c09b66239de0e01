package bookmark

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/internal/utils"
	"github.com/browsekit/navigator/pkg/persistence"
)

var (
	ErrBookmarkIndexOutOfRange = errors.New("bookmark index out of range")
)

// Repo keeps the bookmark list. The whole list is rewritten on every
// mutation, matching how the shell treats the bookmarks file.
type Repo struct {
	mu    sync.Mutex
	store persistence.ListStore[model.Bookmark]
}

// DefaultBookmarks is what a fresh profile starts with.
func DefaultBookmarks() []model.Bookmark {
	return []model.Bookmark{
		{Title: "Google", URL: "https://www.google.com"},
		{Title: "GitHub", URL: "https://github.com"},
		{Title: "Stack Overflow", URL: "https://stackoverflow.com"},
	}
}

func NewRepo(store persistence.ListStore[model.Bookmark]) *Repo {
	return &Repo{store: store}
}

// ReadAll loads the stored list. A missing or unreadable file yields the
// defaults instead of an error, the shell must always have bookmarks to show.
func (r *Repo) ReadAll() ([]model.Bookmark, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(), nil
}

func (r *Repo) Create(bookmark model.Bookmark) error {
	if strings.TrimSpace(bookmark.URL) == "" {
		return fmt.Errorf("bookmark url cannot be empty")
	}
	if !strings.Contains(bookmark.URL, "://") {
		bookmark.URL = "https://" + bookmark.URL
	}
	if strings.TrimSpace(bookmark.Title) == "" {
		bookmark.Title = bookmark.URL
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bookmarks := append(r.load(), bookmark)
	if err := r.store.Save(bookmarks); err != nil {
		return fmt.Errorf("failed to store bookmarks: %w", err)
	}

	return nil
}

func (r *Repo) Delete(index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	bookmarks := r.load()
	if index < 0 || index >= len(bookmarks) {
		return fmt.Errorf("%w: %d", ErrBookmarkIndexOutOfRange, index)
	}

	bookmarks = utils.RemoveIndexFromSlice(bookmarks, index)
	if err := r.store.Save(bookmarks); err != nil {
		return fmt.Errorf("failed to store bookmarks: %w", err)
	}

	return nil
}

func (r *Repo) load() []model.Bookmark {
	bookmarks, err := r.store.Load()
	if err != nil {
		// missing or corrupt file, fall back to defaults rather than
		// failing the shell
		return DefaultBookmarks()
	}

	return bookmarks
}
