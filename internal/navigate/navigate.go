// Package navigate turns raw address-bar input into a loadable URL and the
// DNS status label the shell shows beside it.
package navigate

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/browsekit/navigator/internal/model"
	"github.com/browsekit/navigator/internal/resolver"
)

const (
	STATUS_READY  = "DNS: Ready"
	STATUS_SYSTEM = "DNS: System"

	searchURL = "https://www.google.com/search?q="
)

type Navigator struct {
	resolver *resolver.Resolver
	log      *slog.Logger
}

func New(res *resolver.Resolver, logger *slog.Logger) *Navigator {
	return &Navigator{
		resolver: res,
		log:      logger,
	}
}

// Normalize completes bare input into a full URL. Input without a scheme
// that looks like a hostname gets https, anything else becomes a search.
func Normalize(input string) string {
	input = strings.TrimSpace(input)

	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		return input
	}

	if strings.Contains(input, ".") && !strings.Contains(input, " ") {
		return "https://" + input
	}

	return searchURL + url.QueryEscape(input)
}

// Go resolves the input into a navigation the shell can act on. The label
// only reports where the name came from, the page load itself always uses
// the system resolver.
func (n *Navigator) Go(ctx context.Context, input string) model.Navigation {
	target := Normalize(input)

	nav := model.Navigation{
		Input:  input,
		URL:    target,
		Status: STATUS_READY,
	}

	parsed, err := url.Parse(target)
	if err != nil || parsed.Hostname() == "" {
		n.log.Debug("no hostname in navigation target", slog.String("url", target))
		return nav
	}

	nav.Host = parsed.Hostname()
	nav.Resolution = n.resolver.Resolve(ctx, nav.Host)

	switch nav.Resolution.Source {
	case model.SourceOverride:
		nav.Status = fmt.Sprintf("DNS: %s -> %s", nav.Host, nav.Resolution.Address)
	default:
		nav.Status = STATUS_SYSTEM
	}

	return nav
}
