package client

import (
	"io"
	"net/http"
)

// ReAuth refreshes the credentials on a request, typically by swapping in
// a newly issued token.
type ReAuth func(*http.Request)

// AuthInterceptor replays a request once after re-authenticating when the
// first attempt is rejected with 401 or 403. Stale service tokens heal
// transparently this way.
type AuthInterceptor struct {
	Transport http.RoundTripper
	ReAuth    ReAuth
}

func (a *AuthInterceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	trip := a.Transport
	if trip == nil {
		trip = http.DefaultTransport
	}

	resp, err := trip.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}

	// replay on a clone, RoundTrip must not mutate the original request
	replay := req.Clone(req.Context())
	if req.Body != nil {
		if req.GetBody == nil {
			return resp, nil // body cannot be replayed
		}
		fresh, bodyErr := req.GetBody()
		if bodyErr != nil {
			return resp, nil
		}
		replay.Body = fresh
	}
	a.ReAuth(replay)

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return trip.RoundTrip(replay)
}
