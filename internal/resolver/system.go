package resolver

import (
	"context"
	"net"
)

// SystemLookup asks the platform resolver, same answers the sockets would
// get. Addresses come back verbatim, no preference between v4 and v6.
func SystemLookup(ctx context.Context, hostname string) ([]string, error) {
	return net.DefaultResolver.LookupHost(ctx, hostname)
}
