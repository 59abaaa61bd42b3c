package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics
// This replaces direct access to global Prometheus metrics with dependency injection
type MetricsRegistry interface {
	// HTTP Request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Proposal metrics
	IncrementProposals(outcome string)
	RecordProposalLines(count int)

	// Bulk import metrics
	IncrementBookingsImported(status string, n int)

	// Occupancy cache metrics
	IncrementOccupancyCacheLookups(result string)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

// HTTP Request metrics
func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Proposal metrics
func (r *PrometheusRegistry) IncrementProposals(outcome string) {
	ProposalCount.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRegistry) RecordProposalLines(count int) {
	ProposalLines.Observe(float64(count))
}

// Bulk import metrics
func (r *PrometheusRegistry) IncrementBookingsImported(status string, n int) {
	BookingsImported.WithLabelValues(status).Add(float64(n))
}

// Occupancy cache metrics
func (r *PrometheusRegistry) IncrementOccupancyCacheLookups(result string) {
	OccupancyCacheLookups.WithLabelValues(result).Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementProposals(outcome string)                                    {}
func (r *NoOpRegistry) RecordProposalLines(count int)                                        {}
func (r *NoOpRegistry) IncrementBookingsImported(status string, n int)                       {}
func (r *NoOpRegistry) IncrementOccupancyCacheLookups(result string)                         {}
