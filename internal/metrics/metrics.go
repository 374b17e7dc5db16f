// Package metrics holds the Prometheus collectors folio exports on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reasons used with DiscussionDegradedTotal.
const (
	ReasonMissingThreadKey = "missing_thread_key"
	ReasonUnresolvedURL    = "unresolved_url"
)

var (
	// DiscussionDegradedTotal counts pages rendered with a degraded or
	// missing comments section.
	DiscussionDegradedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_discussion_degraded_total",
		Help: "Total number of degraded discussion embeds, by reason.",
	}, []string{"reason"})

	// PresetFallbackTotal counts player embeds that asked for an unknown size.
	PresetFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "folio_player_preset_fallback_total",
		Help: "Total number of player embeds that fell back to the default size.",
	})

	// HTTPRequestsTotal counts served requests by method and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "folio_http_requests_total",
		Help: "Total number of HTTP requests, by method and status.",
	}, []string{"method", "status"})

	// ContentEntries tracks the number of indexed entries by kind.
	ContentEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "folio_content_entries",
		Help: "Number of indexed content entries, by kind.",
	}, []string{"kind"})
)
