package checks

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"time"
)

type HTTPChecker struct {
	*RoundTripper
	url       string
	client    http.Client
	validator Validator
}

func NewHTTPChecker(url string, timeout time.Duration, validator Validator) *HTTPChecker {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	// override targets are probed by address, certificates will not match
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}

	return &HTTPChecker{
		RoundTripper: NewRoundtripper(),
		url:          url,
		client: http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		validator: validator,
	}
}

func (hc *HTTPChecker) Check() error {
	hc.startRecording()
	resp, err := hc.client.Get(hc.url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	hc.endRecording()

	if resp.StatusCode == http.StatusServiceUnavailable { // target is physically up, but unable to respond
		return fmt.Errorf("server responded with statuscode: %d", resp.StatusCode)
	}

	if hc.validator != nil {
		if err := hc.validator.Validate(resp); err != nil {
			return fmt.Errorf("response validation failed: %w", err)
		}
	}

	return nil
}
