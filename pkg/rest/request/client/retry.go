package client

import (
	"fmt"
	"io"
	"net/http"
)

type retryClientOption func(c *Retry) error

// Retry re-issues failed requests. By default a request is retried on
// transport errors and 5xx answers, up to MaxRetries extra attempts.
type Retry struct {
	client     HTTPClient
	Retryable  func(*http.Response, error) bool
	MaxRetries int
}

func NewRetryClient(baseClient HTTPClient, opts ...retryClientOption) (HTTPClient, error) {
	retry := &Retry{
		client:     baseClient,
		MaxRetries: 3,
		Retryable: func(resp *http.Response, err error) bool {
			return err != nil || resp.StatusCode >= http.StatusInternalServerError
		},
	}

	for _, opt := range opts {
		if err := opt(retry); err != nil {
			return nil, fmt.Errorf("could not create client: %w", err)
		}
	}

	return retry, nil
}

func (c *Retry) Do(req *http.Request) (*http.Response, error) {
	resp, err := c.client.Do(req)

	retries := 0
	for c.Retryable(resp, err) && retries < c.MaxRetries {
		// the first attempt drained the body, a replay needs a fresh one
		if req.Body != nil {
			if req.GetBody == nil {
				return resp, err // body cannot be replayed
			}
			fresh, bodyErr := req.GetBody()
			if bodyErr != nil {
				return resp, err
			}
			req.Body = fresh
		}

		if resp != nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
		}

		retries++
		resp, err = c.client.Do(req)
	}

	return resp, err
}
