package client

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

func TestRetryReplaysRequestBody(t *testing.T) {
	var attempts atomic.Int32
	payload := `{"hostname":"internal.corp","ip":"10.1.2.3"}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("unable to read request body: %v", err)
		}
		if string(body) != payload {
			t.Errorf("attempt %d got a damaged body: %q", attempts.Load()+1, string(body))
		}

		// first attempt fails, the replay must carry the full body again
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	retry, err := NewRetryClient(&http.Client{})
	if err != nil {
		t.Fatalf("unable to create retry client: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL, bytes.NewReader([]byte(payload)))
	if err != nil {
		t.Fatalf("unable to build request: %v", err)
	}

	resp, err := retry.Do(req)
	if err != nil {
		t.Fatalf("unexpected Do error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 after retry, but got: %d", resp.StatusCode)
	}
	if attempts.Load() != 2 {
		t.Errorf("expected 2 attempts, but got: %d", attempts.Load())
	}
}

func TestRetryGivesUpAfterMaxRetries(t *testing.T) {
	var attempts atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	retry, err := NewRetryClient(&http.Client{}, RetryClientWithMaxRetries(2))
	if err != nil {
		t.Fatalf("unable to create retry client: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	if err != nil {
		t.Fatalf("unable to build request: %v", err)
	}

	resp, err := retry.Do(req)
	if err != nil {
		t.Fatalf("unexpected Do error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected the last 500 to surface, but got: %d", resp.StatusCode)
	}
	if attempts.Load() != 3 { // initial attempt + 2 retries
		t.Errorf("expected 3 attempts, but got: %d", attempts.Load())
	}
}

func TestRetrySkipsUnreplayableBody(t *testing.T) {
	var attempts atomic.Int32

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	retry, err := NewRetryClient(&http.Client{})
	if err != nil {
		t.Fatalf("unable to create retry client: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL, nil)
	if err != nil {
		t.Fatalf("unable to build request: %v", err)
	}
	// a one-shot stream, nothing to rewind
	req.Body = io.NopCloser(strings.NewReader("one-shot"))
	req.GetBody = nil
	req.ContentLength = -1

	resp, err := retry.Do(req)
	if err != nil {
		t.Fatalf("unexpected Do error: %v", err)
	}
	defer resp.Body.Close()

	if attempts.Load() != 1 {
		t.Errorf("expected a single attempt for an unreplayable body, but got: %d", attempts.Load())
	}
}

func TestAuthInterceptorReplaysWithFreshBody(t *testing.T) {
	var attempts atomic.Int32
	payload := "hello"

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts.Add(1)

		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("unable to read request body: %v", err)
		}
		if string(body) != payload {
			t.Errorf("replay carried a damaged body: %q", string(body))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	httpClient := &http.Client{
		Transport: &AuthInterceptor{
			ReAuth: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer fresh")
			},
		},
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL, bytes.NewReader([]byte(payload)))
	if err != nil {
		t.Fatalf("unable to build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer stale")

	resp, err := httpClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected Do error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 after re-auth, but got: %d", resp.StatusCode)
	}
	if attempts.Load() != 2 {
		t.Errorf("expected 2 attempts, but got: %d", attempts.Load())
	}
	if req.Header.Get("Authorization") != "Bearer stale" {
		t.Error("expected the original request to stay untouched")
	}
}
