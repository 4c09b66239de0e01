// Package client is a typed API client for the navigator daemon, meant
// for shells and tooling that talk to it programmatically.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/browsekit/navigator/internal/drift"
	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/pkg/auth/jwt"
	"github.com/browsekit/navigator/pkg/rest/request"
	httpclient "github.com/browsekit/navigator/pkg/rest/request/client"
)

const DEFAULT_TIMEOUT = time.Second * 10

type Navigator struct {
	host   string
	client httpclient.HTTPClient
	token  func() (string, error)
}

type navigatorOption func(n *Navigator)

// WithToken replaces the token source, by default the process-wide
// service token manager is asked.
func WithToken(token func() (string, error)) navigatorOption {
	return func(n *Navigator) {
		n.token = token
	}
}

func WithHTTPClient(client httpclient.HTTPClient) navigatorOption {
	return func(n *Navigator) {
		n.client = client
	}
}

// New builds a client against host (a host:port pair, no scheme).
func New(host string, logger httpclient.Logger, opts ...navigatorOption) (*Navigator, error) {
	n := &Navigator{
		host: host,
		token: func() (string, error) {
			return jwt.GetInstance().GetServiceToken()
		},
	}

	for _, opt := range opts {
		opt(n)
	}

	if n.client == nil {
		client, err := httpclient.NewClient(
			DEFAULT_TIMEOUT,
			httpclient.WithRequestLogging(logger),
			httpclient.WithAuthInterception(func(req *http.Request) {
				if token, err := n.token(); err == nil {
					req.Header.Set("Authorization", token)
				}
			}),
			httpclient.WithRetry(3),
		)
		if err != nil {
			return nil, fmt.Errorf("unable to create navigator client: %w", err)
		}
		n.client = client
	}

	return n, nil
}

func (n *Navigator) Overrides(ctx context.Context) (*model.OverrideResponse, error) {
	resp := &model.OverrideResponse{}
	err := n.do(ctx, request.NewBuilder(n.host).GET().URL("/overrides"), http.StatusOK, resp)
	return resp, err
}

func (n *Navigator) OverridesHash(ctx context.Context) (string, error) {
	hash := model.Hash{}
	err := n.do(ctx, request.NewBuilder(n.host).GET().URL("/overrides/hash"), http.StatusOK, &hash)
	return hash.Hash, err
}

func (n *Navigator) CreateOverride(ctx context.Context, entry model.Override) error {
	return n.do(ctx, request.NewBuilder(n.host).POST().URL("/overrides").Body(entry), http.StatusCreated, nil)
}

func (n *Navigator) DeleteOverride(ctx context.Context, hostname string) error {
	return n.do(ctx, request.NewBuilder(n.host).DELETE().URL("/overrides/"+hostname), http.StatusNoContent, nil)
}

func (n *Navigator) ClearOverrides(ctx context.Context) error {
	return n.do(ctx, request.NewBuilder(n.host).DELETE().URL("/overrides"), http.StatusNoContent, nil)
}

func (n *Navigator) Resolve(ctx context.Context, hostname string) (model.Resolution, error) {
	resolution := model.Resolution{}
	err := n.do(ctx, request.NewBuilder(n.host).GET().URL("/resolve/"+hostname), http.StatusOK, &resolution)
	return resolution, err
}

func (n *Navigator) Navigate(ctx context.Context, input string) (model.Navigation, error) {
	nav := model.Navigation{}
	body := map[string]string{"input": input}
	err := n.do(ctx, request.NewBuilder(n.host).POST().URL("/navigate").Body(body), http.StatusOK, &nav)
	return nav, err
}

func (n *Navigator) Drift(ctx context.Context) ([]drift.Divergence, error) {
	divergences := []drift.Divergence{}
	err := n.do(ctx, request.NewBuilder(n.host).GET().URL("/drift"), http.StatusOK, &divergences)
	return divergences, err
}

func (n *Navigator) Bookmarks(ctx context.Context) ([]model.Bookmark, error) {
	bookmarks := []model.Bookmark{}
	err := n.do(ctx, request.NewBuilder(n.host).GET().URL("/bookmarks"), http.StatusOK, &bookmarks)
	return bookmarks, err
}

func (n *Navigator) CreateBookmark(ctx context.Context, bm model.Bookmark) error {
	return n.do(ctx, request.NewBuilder(n.host).POST().URL("/bookmarks").Body(bm), http.StatusCreated, nil)
}

func (n *Navigator) DeleteBookmark(ctx context.Context, index int) error {
	return n.do(ctx, request.NewBuilder(n.host).DELETE().URL(fmt.Sprintf("/bookmarks/%d", index)), http.StatusNoContent, nil)
}

func (n *Navigator) do(ctx context.Context, builder *request.Builder, wantStatus int, dest any) error {
	token, err := n.token()
	if err != nil {
		return fmt.Errorf("unable to get token: %w", err)
	}

	req, err := builder.CTX(ctx).SetHeader("Authorization", token).Build()
	if err != nil {
		return err
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if dest == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("unable to decode response: %w", err)
	}

	return nil
}
