// Package resolver answers hostname lookups for the shell's status bar.
// Manual override entries win, the system resolver is the fallback, and a
// hostname that resolves nowhere is an answer too, never an error.
package resolver

import (
	"context"
	"log/slog"
	"time"

	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/pkg/metrics"
	"github.com/browsekit/navigator/pkg/persistence"
)

const DEFAULT_FALLBACK_TIMEOUT = time.Second * 3

// LookupFunc resolves a hostname to one or more addresses. The default is
// SystemLookup, tests inject their own.
type LookupFunc func(ctx context.Context, hostname string) ([]string, error)

type resolverOption func(r *Resolver)

type Resolver struct {
	overrides       persistence.Repository[model.Override]
	lookup          LookupFunc
	fallbackTimeout time.Duration
	log             *slog.Logger
}

func New(overrides persistence.Repository[model.Override], logger *slog.Logger, opts ...resolverOption) *Resolver {
	r := &Resolver{
		overrides:       overrides,
		lookup:          SystemLookup,
		fallbackTimeout: DEFAULT_FALLBACK_TIMEOUT,
		log:             logger,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

func WithLookup(lookup LookupFunc) resolverOption {
	return func(r *Resolver) {
		r.lookup = lookup
	}
}

func WithFallbackTimeout(timeout time.Duration) resolverOption {
	return func(r *Resolver) {
		r.fallbackTimeout = timeout
	}
}

// Resolve never returns an error. An override answers without touching the
// network, otherwise the system resolver gets one shot within the fallback
// timeout, and any failure collapses into a Source of none.
func (r *Resolver) Resolve(ctx context.Context, hostname string) model.Resolution {
	if entry, err := r.overrides.Read(hostname); err == nil {
		metrics.ResolutionsTotal.WithLabelValues(string(model.SourceOverride)).Inc()
		return model.Resolution{
			Hostname: hostname,
			Address:  entry.IP,
			Source:   model.SourceOverride,
		}
	}

	ctx, cancel := context.WithTimeout(ctx, r.fallbackTimeout)
	defer cancel()

	addrs, err := r.lookup(ctx, hostname)
	if err != nil || len(addrs) == 0 {
		r.log.Debug("hostname did not resolve", slog.String("hostname", hostname))
		metrics.ResolutionsTotal.WithLabelValues(string(model.SourceNone)).Inc()
		return model.Resolution{
			Hostname: hostname,
			Source:   model.SourceNone,
		}
	}

	metrics.ResolutionsTotal.WithLabelValues(string(model.SourceSystem)).Inc()
	return model.Resolution{
		Hostname: hostname,
		Address:  addrs[0],
		Source:   model.SourceSystem,
	}
}
