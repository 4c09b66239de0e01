// Package metrics registers the navigator's prometheus collectors on the
// default registry and exposes them over promhttp.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_resolutions_total",
			Help: "Hostname resolutions grouped by the source that answered",
		},
		[]string{"source"},
	)

	OverrideEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_override_entries",
			Help: "Number of manual DNS override entries currently held",
		},
	)

	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_probes_total",
			Help: "Reachability probes grouped by result",
		},
		[]string{"result"},
	)

	TargetsReachable = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "navigator_targets_reachable",
			Help: "Monitored override targets currently considered reachable",
		},
	)

	DriftDivergencesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "navigator_drift_divergences_total",
			Help: "Override entries observed diverging from the authoritative zone",
		},
	)

	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "navigator_http_requests_total",
			Help: "API requests grouped by route and status code",
		},
		[]string{"route", "status"},
	)
)

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
