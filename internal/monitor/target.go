package monitor

import (
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/browsekit/navigator/internal/checks"
	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/pkg/metrics"
)

type ReachabilityChangeCallback func(reachable bool)

// Target probes the address behind one override entry. It implements
// pool.Job so the monitor can fan probes out over the worker pool.
type Target struct {
	Hostname                   string
	addr                       string
	checker                    checks.Checker
	FailureThreshold           int
	failureCount               int
	isReachable                bool
	reachabilityChangeCallback ReachabilityChangeCallback
	log                        *zap.SugaredLogger
}

type targetOption func(t *Target) error

func WithChecker(checker checks.Checker) targetOption {
	return func(t *Target) error {
		t.checker = checker
		return nil
	}
}

// WithCheckType builds the checker from a configured type name. A non-empty
// luaScript attaches response validation, only meaningful for HTTP.
func WithCheckType(typ, luaScript string) targetOption {
	return func(t *Target) error {
		target := t.addr
		if typ == checks.HTTP {
			target = "http://" + t.addr
		}

		var checker checks.Checker
		var err error
		if luaScript != "" {
			checker, err = checks.New(typ, target, checks.WithValidator(checks.NewLuaValidator(luaScript)))
		} else {
			checker, err = checks.New(typ, target)
		}
		if err != nil {
			return err
		}

		t.checker = checker
		return nil
	}
}

// NewTarget builds a target probing entry's address on port 80. Targets
// start unreachable, the threshold of consecutive successes flips them.
func NewTarget(entry model.Override, logger *zap.SugaredLogger, opts ...targetOption) (*Target, error) {
	ip := net.ParseIP(entry.IP)
	if ip == nil {
		return nil, ErrUnableToParseAddr
	}

	t := &Target{
		Hostname:         entry.Hostname,
		addr:             net.JoinHostPort(ip.String(), "80"),
		FailureThreshold: 3,
		failureCount:     3,
		isReachable:      false,
		log:              logger,
		reachabilityChangeCallback: func(bool) {
		},
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, fmt.Errorf("unable to create target: %w", err)
		}
	}

	if t.checker == nil {
		t.checker = checks.NewTCPFullChecker(t.addr, checks.DEFAULT_TIMEOUT)
	}

	return t, nil
}

// probes reachability of the target
func (t *Target) Execute() error {
	return t.checker.Check()
}

// called when a probe succeeds
func (t *Target) OnSuccess() {
	t.log.Debugf("probe on target: %v (%v) succeeded", t.Hostname, t.addr)
	metrics.ProbesTotal.WithLabelValues("success").Inc()

	if t.isReachable { // already reachable
		t.failureCount = 0
		return
	}

	if t.failureCount > 0 {
		t.failureCount--
	}

	if t.failureCount == 0 {
		t.isReachable = true
		t.reachabilityChangeCallback(true)
	}
}

// called when a probe fails
func (t *Target) OnFailure(err error) {
	t.log.Debugf("probe on target: %v (%v) failed: %s", t.Hostname, t.addr, err.Error())
	metrics.ProbesTotal.WithLabelValues("failure").Inc()

	if !t.isReachable { // already unreachable
		t.failureCount = t.FailureThreshold
		return
	}

	if t.failureCount < t.FailureThreshold {
		t.failureCount++
	}

	if t.failureCount == t.FailureThreshold { // threshold reached, target is considered down
		t.isReachable = false
		t.reachabilityChangeCallback(false)
	}
}

func (t *Target) SetReachabilityChangeCallback(callback ReachabilityChangeCallback) {
	t.reachabilityChangeCallback = callback
}

func (t *Target) IsReachable() bool {
	return t.isReachable
}

func (t *Target) Addr() string {
	return t.addr
}
