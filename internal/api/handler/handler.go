package handler

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/browsekit/navigator/internal/config"
	"github.com/browsekit/navigator/internal/drift"
	"github.com/browsekit/navigator/internal/navigate"
	"github.com/browsekit/navigator/internal/repositories/bookmark"
	"github.com/browsekit/navigator/internal/repositories/override"
	"github.com/browsekit/navigator/internal/resolver"
)

// ReachabilityReader answers whether a monitored hostname is currently
// reachable. Satisfied by the monitor.
type ReachabilityReader interface {
	Reachable(hostname string) (bool, error)
}

// DivergenceReader exposes the last drift poll. Satisfied by the detector.
type DivergenceReader interface {
	Divergences() []drift.Divergence
}

type Handler struct {
	overrides *override.Repo
	bookmarks *bookmark.Repo
	resolver  *resolver.Resolver
	navigator *navigate.Navigator
	reach     ReachabilityReader
	drift     DivergenceReader
	log       *zap.Logger
}

// SetReachability decorates bookmark listings with monitor state. Optional,
// the monitor can be disabled.
func (h *Handler) SetReachability(reach ReachabilityReader) {
	h.reach = reach
}

// SetDriftReader enables the drift route. Optional, drift detection can be
// disabled.
func (h *Handler) SetDriftReader(reader DivergenceReader) {
	h.drift = reader
}

func NewHandler(
	cfg *config.Config,
	overrides *override.Repo,
	bookmarks *bookmark.Repo,
	res *resolver.Resolver,
	nav *navigate.Navigator,
) (*Handler, *zap.Logger, error) {
	h := &Handler{
		overrides: overrides,
		bookmarks: bookmarks,
		resolver:  res,
		navigator: nav,
	}

	switch cfg.Server().Environment {
	case "development", "dev", "DEV":
		hlog, err := zap.NewDevelopment(
			zap.WithCaller(true),
			zap.AddStacktrace(zap.PanicLevel),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create handler: %w", err)
		}
		h.log = hlog

	default:
		hlog, err := zap.NewProduction()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot create handler: %w", err)
		}
		h.log = hlog
	}

	return h, h.log, nil
}
