package client

import "net/http"

// Logger is the minimal logging surface the transports need; both
// *slog.Logger and zap's sugared logger satisfy it through thin shims.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// LogInterception logs each outgoing request and whether it came back.
type LogInterception struct {
	Transport http.RoundTripper
	logger    Logger
}

func (li *LogInterception) RoundTrip(req *http.Request) (*http.Response, error) {
	trip := li.Transport
	if trip == nil {
		trip = http.DefaultTransport
	}

	endpoint := req.URL.String()
	li.logger.Debug("outgoing request", "method", req.Method, "endpoint", endpoint)

	resp, err := trip.RoundTrip(req)
	if err != nil {
		li.logger.Error("outgoing request failed", "reason", err.Error(), "method", req.Method, "endpoint", endpoint)
		return nil, err
	}

	li.logger.Debug("outgoing request answered", "status_code", resp.StatusCode, "endpoint", endpoint)
	return resp, nil
}
