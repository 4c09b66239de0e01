package bookmark

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/pkg/persistence/store/file"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	return NewRepo(file.NewStore[model.Bookmark](path))
}

func TestDefaultsWhenFileMissing(t *testing.T) {
	repo := newTestRepo(t)

	bookmarks, err := repo.ReadAll()
	if err != nil {
		t.Fatalf("unexpected ReadAll error: %v", err)
	}

	want := DefaultBookmarks()
	if len(bookmarks) != len(want) {
		t.Fatalf("expected %d default bookmarks, but got: %d", len(want), len(bookmarks))
	}
	if bookmarks[0].Title != "Google" {
		t.Errorf("expected Google first, but got: %s", bookmarks[0].Title)
	}
}

func TestDefaultsWhenFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("unable to write test file: %v", err)
	}
	repo := NewRepo(file.NewStore[model.Bookmark](path))

	bookmarks, err := repo.ReadAll()
	if err != nil {
		t.Fatalf("unexpected ReadAll error: %v", err)
	}
	if len(bookmarks) != len(DefaultBookmarks()) {
		t.Errorf("expected defaults on corrupt file, but got %d bookmarks", len(bookmarks))
	}
}

func TestCreateAppendsAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bookmarks.json")
	repo := NewRepo(file.NewStore[model.Bookmark](path))

	if err := repo.Create(model.Bookmark{Title: "Example", URL: "example.com"}); err != nil {
		t.Fatalf("unexpected Create error: %v", err)
	}

	// a second repo over the same file sees the stored list
	other := NewRepo(file.NewStore[model.Bookmark](path))
	bookmarks, err := other.ReadAll()
	if err != nil {
		t.Fatalf("unexpected ReadAll error: %v", err)
	}

	last := bookmarks[len(bookmarks)-1]
	if last.URL != "https://example.com" {
		t.Errorf("expected the url to get a https scheme, but got: %s", last.URL)
	}
}

func TestCreateRejectsEmptyURL(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Create(model.Bookmark{Title: "empty"}); err == nil {
		t.Error("expected an error for an empty url")
	}
}

func TestDeleteByIndex(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Delete(0); err != nil {
		t.Fatalf("unexpected Delete error: %v", err)
	}

	bookmarks, err := repo.ReadAll()
	if err != nil {
		t.Fatalf("unexpected ReadAll error: %v", err)
	}
	if len(bookmarks) != len(DefaultBookmarks())-1 {
		t.Errorf("expected one bookmark removed, but got: %d", len(bookmarks))
	}
	for _, b := range bookmarks {
		if b.Title == "Google" {
			t.Error("expected the first default to be removed")
		}
	}
}

func TestDeleteOutOfRange(t *testing.T) {
	repo := newTestRepo(t)

	if err := repo.Delete(42); !errors.Is(err, ErrBookmarkIndexOutOfRange) {
		t.Errorf("expected ErrBookmarkIndexOutOfRange, but got: %v", err)
	}
	if err := repo.Delete(-1); !errors.Is(err, ErrBookmarkIndexOutOfRange) {
		t.Errorf("expected ErrBookmarkIndexOutOfRange, but got: %v", err)
	}
}
