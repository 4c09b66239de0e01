package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"github.com/browsekit/navigator/internal/api/routes"
	"github.com/browsekit/navigator/internal/drift"
	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/internal/navigate"
	"github.com/browsekit/navigator/internal/repositories/bookmark"
	"github.com/browsekit/navigator/internal/repositories/override"
	"github.com/browsekit/navigator/internal/resolver"
	"github.com/browsekit/navigator/pkg/persistence/store/file"
	"github.com/browsekit/navigator/pkg/persistence/store/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *Handler) {
	t.Helper()

	overrides, err := override.NewRepo(memory.NewStore[model.Override](), override.DefaultEntries()...)
	if err != nil {
		t.Fatalf("unable to create override repo: %v", err)
	}

	bookmarks := bookmark.NewRepo(
		file.NewStore[model.Bookmark](filepath.Join(t.TempDir(), "bookmarks.json")),
	)

	res := resolver.New(overrides, slog.Default(), resolver.WithLookup(
		func(ctx context.Context, hostname string) ([]string, error) {
			return nil, errors.New("offline")
		},
	))

	h := &Handler{
		overrides: overrides,
		bookmarks: bookmarks,
		resolver:  res,
		navigator: navigate.New(res, slog.Default()),
		log:       zap.NewNop(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(routes.GET_OVERRIDES, h.GetOverrides)
	mux.HandleFunc(routes.GET_OVERRIDES_HASH, h.GetOverridesHash)
	mux.HandleFunc(routes.GET_OVERRIDE, h.GetOverride)
	mux.HandleFunc(routes.POST_OVERRIDE, h.CreateOverride)
	mux.HandleFunc(routes.DELETE_OVERRIDE, h.DeleteOverride)
	mux.HandleFunc(routes.DELETE_ALL_OVERRIDE, h.ClearOverrides)
	mux.HandleFunc(routes.GET_DRIFT, h.GetDrift)
	mux.HandleFunc(routes.GET_RESOLVE, h.GetResolve)
	mux.HandleFunc(routes.POST_NAVIGATE, h.PostNavigate)
	mux.HandleFunc(routes.GET_BOOKMARKS, h.GetBookmarks)
	mux.HandleFunc(routes.POST_BOOKMARK, h.CreateBookmark)
	mux.HandleFunc(routes.DELETE_BOOKMARK, h.DeleteBookmark)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	return ts, h
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("unable to marshal request body: %v", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		t.Fatalf("unable to build request: %v", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	return resp
}

func TestGetOverrides(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+routes.OVERRIDES, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
	}

	var body model.OverrideResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if body.TotalItems != 3 {
		t.Errorf("expected 3 seeded entries, but got: %d", body.TotalItems)
	}
}

func TestCreateAndGetOverride(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+routes.OVERRIDES, model.Override{Hostname: "internal.corp", IP: "10.1.2.3"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, but got: %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, ts.URL+routes.OVERRIDES+"/internal.corp", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
	}

	var entry model.Override
	if err := json.NewDecoder(resp.Body).Decode(&entry); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if entry.IP != "10.1.2.3" {
		t.Errorf("expected 10.1.2.3, but got: %s", entry.IP)
	}
}

func TestCreateOverrideRejectsBadIP(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+routes.OVERRIDES, model.Override{Hostname: "internal.corp", IP: "not-an-ip"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, but got: %d", resp.StatusCode)
	}
}

func TestGetUnknownOverride(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+routes.OVERRIDES+"/unknown.example", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404, but got: %d", resp.StatusCode)
	}
}

func TestDeleteOverrideIsIdempotent(t *testing.T) {
	ts, _ := newTestServer(t)

	for range 2 {
		resp := do(t, http.MethodDelete, ts.URL+routes.OVERRIDES+"/httpbin.org", nil)
		if resp.StatusCode != http.StatusNoContent {
			t.Errorf("expected status 204, but got: %d", resp.StatusCode)
		}
	}
}

func TestClearOverrides(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodDelete, ts.URL+routes.OVERRIDES, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, but got: %d", resp.StatusCode)
	}

	resp = do(t, http.MethodGet, ts.URL+routes.OVERRIDES, nil)
	var body model.OverrideResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if body.TotalItems != 0 {
		t.Errorf("expected an empty table, but got: %d entries", body.TotalItems)
	}
}

func TestOverridesHashChangesWithContent(t *testing.T) {
	ts, _ := newTestServer(t)

	read := func() string {
		resp := do(t, http.MethodGet, ts.URL+routes.OVERRIDES_HASH, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
		}
		var h model.Hash
		if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
			t.Fatalf("unable to decode response: %v", err)
		}
		return h.Hash
	}

	before := read()
	if before == "" {
		t.Fatal("expected a non-empty hash")
	}
	if again := read(); again != before {
		t.Error("expected the hash to be stable for unchanged entries")
	}

	do(t, http.MethodPost, ts.URL+routes.OVERRIDES, model.Override{Hostname: "internal.corp", IP: "10.1.2.3"})
	if after := read(); after == before {
		t.Error("expected the hash to change after a new entry")
	}
}

func TestGetResolve(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+routes.RESOLVE+"/example.com", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
	}

	var resolution model.Resolution
	if err := json.NewDecoder(resp.Body).Decode(&resolution); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if resolution.Source != model.SourceOverride {
		t.Errorf("expected source override, but got: %s", resolution.Source)
	}
	if resolution.Address != "93.184.216.34" {
		t.Errorf("expected the override address, but got: %s", resolution.Address)
	}
}

func TestGetResolveUnknownHostIsStillOK(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+routes.RESOLVE+"/unknown.invalid", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
	}

	var resolution model.Resolution
	if err := json.NewDecoder(resp.Body).Decode(&resolution); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if resolution.Source != model.SourceNone {
		t.Errorf("expected source none, but got: %s", resolution.Source)
	}
}

func TestPostNavigate(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+routes.NAVIGATE, map[string]string{"input": "httpbin.org"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
	}

	var nav model.Navigation
	if err := json.NewDecoder(resp.Body).Decode(&nav); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if nav.URL != "https://httpbin.org" {
		t.Errorf("expected https://httpbin.org, but got: %s", nav.URL)
	}
	if nav.Status != "DNS: httpbin.org -> 54.91.118.50" {
		t.Errorf("unexpected status label: %s", nav.Status)
	}
}

func TestPostNavigateRejectsEmptyInput(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodPost, ts.URL+routes.NAVIGATE, map[string]string{"input": "  "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400, but got: %d", resp.StatusCode)
	}
}

type staticReach map[string]bool

func (s staticReach) Reachable(hostname string) (bool, error) {
	reachable, ok := s[hostname]
	if !ok {
		return false, errors.New("hostname is not monitored")
	}
	return reachable, nil
}

type staticDivergences []drift.Divergence

func (s staticDivergences) Divergences() []drift.Divergence {
	return s
}

func TestGetBookmarksReportsReachability(t *testing.T) {
	ts, h := newTestServer(t)
	h.SetReachability(staticReach{
		"www.google.com": true,
		"github.com":     false,
	})

	resp := do(t, http.MethodGet, ts.URL+routes.BOOKMARKS, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
	}

	var bookmarks []model.Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&bookmarks); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}

	byTitle := make(map[string]model.Bookmark, len(bookmarks))
	for _, bm := range bookmarks {
		byTitle[bm.Title] = bm
	}

	if google := byTitle["Google"]; google.Reachable == nil || !*google.Reachable {
		t.Error("expected the monitored google bookmark to report reachable")
	}
	if github := byTitle["GitHub"]; github.Reachable == nil || *github.Reachable {
		t.Error("expected the monitored github bookmark to report unreachable")
	}
	if so := byTitle["Stack Overflow"]; so.Reachable != nil {
		t.Error("expected the unmonitored bookmark to carry no reachability")
	}
}

func TestGetDrift(t *testing.T) {
	ts, h := newTestServer(t)
	h.SetDriftReader(staticDivergences{
		{Hostname: "example.com", Override: "93.184.216.34", ZoneAddr: "93.184.216.35"},
	})

	resp := do(t, http.MethodGet, ts.URL+routes.DRIFT, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, but got: %d", resp.StatusCode)
	}

	var divergences []drift.Divergence
	if err := json.NewDecoder(resp.Body).Decode(&divergences); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if len(divergences) != 1 || divergences[0].Hostname != "example.com" {
		t.Errorf("unexpected divergences: %+v", divergences)
	}
}

func TestGetDriftWhenDisabled(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+routes.DRIFT, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 when drift detection is off, but got: %d", resp.StatusCode)
	}
}

func TestBookmarkLifecycle(t *testing.T) {
	ts, _ := newTestServer(t)

	resp := do(t, http.MethodGet, ts.URL+routes.BOOKMARKS, nil)
	var bookmarks []model.Bookmark
	if err := json.NewDecoder(resp.Body).Decode(&bookmarks); err != nil {
		t.Fatalf("unable to decode response: %v", err)
	}
	if len(bookmarks) != 3 {
		t.Fatalf("expected 3 default bookmarks, but got: %d", len(bookmarks))
	}

	resp = do(t, http.MethodPost, ts.URL+routes.BOOKMARKS, model.Bookmark{Title: "Example", URL: "example.com"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status 201, but got: %d", resp.StatusCode)
	}

	resp = do(t, http.MethodDelete, ts.URL+routes.BOOKMARKS+"/0", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected status 204, but got: %d", resp.StatusCode)
	}

	resp = do(t, http.MethodDelete, ts.URL+routes.BOOKMARKS+"/99", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected status 404 for an out-of-range index, but got: %d", resp.StatusCode)
	}

	resp = do(t, http.MethodDelete, ts.URL+routes.BOOKMARKS+"/abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected status 400 for a non-numeric index, but got: %d", resp.StatusCode)
	}
}
