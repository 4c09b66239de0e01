package client

import (
	"fmt"
	"net/http"
)

type optionContext struct {
	base    *Client
	wrapped HTTPClient
}

type clientOption func(ctx *optionContext) error

// baseTransport returns the client's transport, falling back to the
// package default when none was set yet.
func (ctx *optionContext) baseTransport() http.RoundTripper {
	if ctx.base.Transport != nil {
		return ctx.base.Transport
	}
	return http.DefaultTransport
}

// WithRetry wraps the client so failed requests are re-issued up to
// maxRetries times before the error is surfaced.
func WithRetry(maxRetries int, retryOptions ...retryClientOption) clientOption {
	return func(ctx *optionContext) error {
		opts := append([]retryClientOption{RetryClientWithMaxRetries(maxRetries)}, retryOptions...)

		retryClient, err := NewRetryClient(ctx.wrapped, opts...)
		if err != nil {
			return err
		}
		ctx.wrapped = retryClient
		return nil
	}
}

// WithAuthInterception installs a transport that calls reAuth and replays
// the request once when the server answers 401 or 403.
func WithAuthInterception(reAuth ReAuth) clientOption {
	return func(ctx *optionContext) error {
		if reAuth == nil {
			return fmt.Errorf("re-authentication func cannot be nil")
		}
		ctx.base.Transport = &AuthInterceptor{Transport: ctx.baseTransport(), ReAuth: reAuth}
		return nil
	}
}

// WithRequestLogging installs a transport that logs every outgoing
// request and its outcome.
func WithRequestLogging(logger Logger) clientOption {
	return func(ctx *optionContext) error {
		if logger == nil {
			return fmt.Errorf("cannot add request logging with a nil logger")
		}
		ctx.base.Transport = &LogInterception{Transport: ctx.baseTransport(), logger: logger}
		return nil
	}
}

func RetryClientWithMaxRetries(retries int) retryClientOption {
	return func(c *Retry) error {
		if retries < 0 {
			return fmt.Errorf("max retries cannot be negative")
		}
		c.MaxRetries = retries
		return nil
	}
}

// RetryClientWithRetryFunc overrides the predicate deciding whether a
// response warrants another attempt.
func RetryClientWithRetryFunc(f func(*http.Response, error) bool) retryClientOption {
	return func(c *Retry) error {
		if f == nil {
			return fmt.Errorf("retry function cannot be nil")
		}
		c.Retryable = f
		return nil
	}
}
