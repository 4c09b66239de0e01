// Package drift compares the manual override table against the
// authoritative zone. An override that disagrees with the zone is exactly
// the situation the table exists for, but it is worth surfacing: the
// operator may simply have forgotten a stale entry.
package drift

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"codeberg.org/miekg/dns"

	"github.com/browsekit/navigator/internal/repositories/override"
	"github.com/browsekit/navigator/pkg/bslog"
	"github.com/browsekit/navigator/pkg/metrics"
)

// Divergence is one override entry whose address differs from the zone.
type Divergence struct {
	Hostname string `json:"hostname"`
	Override string `json:"override"`
	ZoneAddr string `json:"zone_addr"`
}

// Detector pulls the zone via AXFR on an interval and diffs the A records
// against the override table.
type Detector struct {
	zone      string
	server    string
	overrides *override.Repo
	interval  time.Duration
	timeout   time.Duration
	client    *dns.Client
	wg        sync.WaitGroup

	mu      sync.RWMutex
	current []Divergence
}

type detectorOption func(d *Detector)

func WithInterval(interval time.Duration) detectorOption {
	return func(d *Detector) {
		d.interval = interval
	}
}

func WithTimeout(timeout time.Duration) detectorOption {
	return func(d *Detector) {
		d.timeout = timeout
	}
}

func NewDetector(zone, server string, overrides *override.Repo, opts ...detectorOption) *Detector {
	d := &Detector{
		zone:      zone,
		server:    server,
		overrides: overrides,
		interval:  DEFAULT_POLL_INTERVAL,
		timeout:   DEFAULT_TIMEOUT,
		client:    dns.NewClient(),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// StartAutoPoll diffs once immediately, then on every tick until the
// context is cancelled.
func (d *Detector) StartAutoPoll(ctx context.Context) {
	bslog.Debug("polling authoritative zone", slog.String("zone", d.zone), slog.String("interval", d.interval.String()))

	ticker := time.NewTicker(d.interval)
	d.wg.Go(func() {
		defer ticker.Stop()
		defer bslog.Debug("closing drift detector")

		d.poll(ctx)

		for {
			select {
			case <-ctx.Done():
				return

			case <-ticker.C:
				d.poll(ctx)
			}
		}
	})
}

func (d *Detector) Stop() {
	d.wg.Wait()
}

// Divergences returns the result of the last completed poll.
func (d *Detector) Divergences() []Divergence {
	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := make([]Divergence, len(d.current))
	copy(snapshot, d.current)
	return snapshot
}

func (d *Detector) poll(ctx context.Context) {
	zoneRecords, err := d.fetchZone(ctx)
	if err != nil {
		bslog.Warn("zone-transfer failed", slog.String("zone", d.zone), slog.String("reason", err.Error()))
		return
	}

	entries, err := d.overrides.Entries()
	if err != nil {
		bslog.Error("unable to read override entries", slog.String("reason", err.Error()))
		return
	}

	divergences := diff(entries, zoneRecords)
	for _, div := range divergences {
		metrics.DriftDivergencesTotal.Inc()
		bslog.Warn("override diverges from zone",
			slog.String("hostname", div.Hostname),
			slog.String("override", div.Override),
			slog.String("zone_addr", div.ZoneAddr),
		)
	}

	d.mu.Lock()
	d.current = divergences
	d.mu.Unlock()
}

// fetchZone runs a full AXFR and keeps the A records, keyed on the owner
// name without the trailing dot.
func (d *Detector) fetchZone(ctx context.Context) (map[string]string, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	bslog.Debug("starting zone-transfer", slog.String("zone", d.zone))
	d.client.Transfer = &dns.Transfer{}
	msg := dns.NewMsg(d.zone, dns.TypeAXFR)

	envelopes, err := d.client.TransferIn(ctx, msg, "tcp", d.server)
	if err != nil {
		return nil, fmt.Errorf("could not transfer zone: %v from server: %v: %w", d.zone, d.server, err)
	}

	records := make(map[string]string)
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()

		case envelope, ok := <-envelopes:
			if !ok { // transfer completed
				return records, nil
			}
			if envelope.Error != nil {
				return nil, envelope.Error
			}
			for _, rr := range envelope.Answer {
				if a, ok := rr.(*dns.A); ok {
					name := strings.TrimSuffix(a.Hdr.Name, ".")
					records[name] = a.A.String()
				}
			}

		case <-time.After(d.timeout):
			return nil, fmt.Errorf("zone-transfer timed out after: %s", d.timeout)
		}
	}
}

// diff reports overrides whose hostname exists in the zone with a
// different address. Hostnames absent from the zone are not drift, the
// table routinely covers names the zone does not serve.
func diff(entries map[string]string, zone map[string]string) []Divergence {
	divergences := make([]Divergence, 0)
	for hostname, ip := range entries {
		zoneAddr, ok := zone[hostname]
		if !ok || zoneAddr == ip {
			continue
		}
		divergences = append(divergences, Divergence{
			Hostname: hostname,
			Override: ip,
			ZoneAddr: zoneAddr,
		})
	}

	return divergences
}
