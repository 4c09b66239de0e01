package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/browsekit/navigator/internal/drift"
	"github.com/browsekit/navigator/internal/model"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

func newTestClient(t *testing.T, mux *http.ServeMux) *Navigator {
	t.Helper()

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	// the builder wants a bare host:port
	host := strings.TrimPrefix(ts.URL, "http://")

	n, err := New(host, nopLogger{},
		WithToken(func() (string, error) { return "Bearer test-token", nil }),
		WithHTTPClient(http.DefaultClient),
	)
	if err != nil {
		t.Fatalf("unable to create client: %v", err)
	}
	return n
}

func TestOverrides(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /overrides", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("expected the bearer token on the request, but got: %s", r.Header.Get("Authorization"))
		}
		json.NewEncoder(w).Encode(model.OverrideResponse{
			Items: []model.Override{{Hostname: "example.com", IP: "93.184.216.34"}},
		})
	})

	n := newTestClient(t, mux)
	resp, err := n.Overrides(context.Background())
	if err != nil {
		t.Fatalf("unexpected Overrides error: %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0].Hostname != "example.com" {
		t.Errorf("unexpected response: %+v", resp.Items)
	}
}

func TestCreateOverride(t *testing.T) {
	var got model.Override

	mux := http.NewServeMux()
	mux.HandleFunc("POST /overrides", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("unable to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	})

	n := newTestClient(t, mux)
	if err := n.CreateOverride(context.Background(), model.Override{Hostname: "internal.corp", IP: "10.1.2.3"}); err != nil {
		t.Fatalf("unexpected CreateOverride error: %v", err)
	}
	if got.Hostname != "internal.corp" || got.IP != "10.1.2.3" {
		t.Errorf("unexpected payload: %+v", got)
	}
}

func TestDeleteOverride(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /overrides/{hostname}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("hostname") != "internal.corp" {
			t.Errorf("expected hostname internal.corp, but got: %s", r.PathValue("hostname"))
		}
		w.WriteHeader(http.StatusNoContent)
	})

	n := newTestClient(t, mux)
	if err := n.DeleteOverride(context.Background(), "internal.corp"); err != nil {
		t.Fatalf("unexpected DeleteOverride error: %v", err)
	}
}

func TestResolve(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /resolve/{hostname}", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(model.Resolution{
			Hostname: r.PathValue("hostname"),
			Address:  "54.91.118.50",
			Source:   model.SourceOverride,
		})
	})

	n := newTestClient(t, mux)
	resolution, err := n.Resolve(context.Background(), "httpbin.org")
	if err != nil {
		t.Fatalf("unexpected Resolve error: %v", err)
	}
	if resolution.Address != "54.91.118.50" || resolution.Source != model.SourceOverride {
		t.Errorf("unexpected resolution: %+v", resolution)
	}
}

func TestUnexpectedStatusIsAnError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /overrides", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	n := newTestClient(t, mux)
	if _, err := n.Overrides(context.Background()); err == nil {
		t.Error("expected a 500 to surface as an error")
	}
}

func TestDrift(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /drift", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]drift.Divergence{
			{Hostname: "example.com", Override: "93.184.216.34", ZoneAddr: "93.184.216.35"},
		})
	})

	n := newTestClient(t, mux)
	divergences, err := n.Drift(context.Background())
	if err != nil {
		t.Fatalf("unexpected Drift error: %v", err)
	}
	if len(divergences) != 1 || divergences[0].ZoneAddr != "93.184.216.35" {
		t.Errorf("unexpected divergences: %+v", divergences)
	}
}

func TestBookmarks(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /bookmarks", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]model.Bookmark{{Title: "Google", URL: "https://www.google.com"}})
	})

	n := newTestClient(t, mux)
	bookmarks, err := n.Bookmarks(context.Background())
	if err != nil {
		t.Fatalf("unexpected Bookmarks error: %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].Title != "Google" {
		t.Errorf("unexpected bookmarks: %+v", bookmarks)
	}
}
