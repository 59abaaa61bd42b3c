package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixengine_requests_total",
			Help: "Total API requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mixengine_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// proposals generated, labelled by outcome (ok, empty)
	ProposalCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixengine_proposals_total",
			Help: "Total proposals generated",
		},
		[]string{"outcome"},
	)

	// distribution of line counts per generated proposal
	ProposalLines = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mixengine_proposal_lines",
			Help:    "Histogram of lines per generated proposal",
			Buckets: prometheus.LinearBuckets(0, 1, 16),
		},
	)

	// bookings taken in through bulk import, labelled by status
	BookingsImported = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixengine_bookings_imported_total",
			Help: "Total bookings processed by bulk import",
		},
		[]string{"status"},
	)

	// occupancy table cache lookups, labelled by result (hit, miss)
	OccupancyCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mixengine_occupancy_cache_total",
			Help: "Total occupancy cache lookups",
		},
		[]string{"result"},
	)
)

func init() {
	// register all metrics
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		ProposalCount,
		ProposalLines,
		BookingsImported,
		OccupancyCacheLookups,
	)
}
