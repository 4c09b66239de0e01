// Package client builds http clients decorated with retry, request
// logging, and re-authentication transports.
package client

import (
	"fmt"
	"net/http"
	"time"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	http.Client
}

// NewClient assembles a client from the given options. Options apply in
// order; transport decorators stack on the base client, wrapper clients
// like retry stack on whatever the previous option produced.
func NewClient(timeout time.Duration, opts ...clientOption) (HTTPClient, error) {
	base := &Client{
		http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}

	ctx := &optionContext{base: base, wrapped: base}
	for _, opt := range opts {
		if err := opt(ctx); err != nil {
			return nil, fmt.Errorf("could not create client: %w", err)
		}
	}

	return ctx.wrapped, nil
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.Client.Do(req)
}
