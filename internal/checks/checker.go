package checks

import (
	"fmt"
	"time"
)

type Checker interface {
	Check() error
	AverageRoundtripTime() time.Duration
}

type checkerOption func(*settings)

type settings struct {
	timeout   time.Duration
	validator Validator
}

func WithTimeout(timeout time.Duration) checkerOption {
	return func(s *settings) {
		s.timeout = timeout
	}
}

// WithValidator attaches script-based validation to checkers that carry a
// response, currently only HTTP.
func WithValidator(v Validator) checkerOption {
	return func(s *settings) {
		s.validator = v
	}
}

// New builds a checker for the given type. target is a URL for HTTP checks
// and a host:port pair for the TCP variants.
func New(typ, target string, opts ...checkerOption) (Checker, error) {
	s := settings{timeout: DEFAULT_TIMEOUT}
	for _, opt := range opts {
		opt(&s)
	}

	switch typ {
	case HTTP:
		return NewHTTPChecker(target, s.timeout, s.validator), nil
	case TCP_FULL:
		return NewTCPFullChecker(target, s.timeout), nil
	case TCP_HALF:
		return NewTCPHalfChecker(target, s.timeout), nil
	case DRYRUN:
		return NewDryRun(), nil
	}

	return nil, fmt.Errorf("unknown check type: %s", typ)
}
