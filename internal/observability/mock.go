package observability

import (
	"sync"
	"time"
)

// MockMetricsRegistry is a MetricsRegistry for testing that records the
// counts it receives.
type MockMetricsRegistry struct {
	mu sync.Mutex

	Requests         map[string]int
	Proposals        map[string]int
	LineCounts       []int
	Imported         map[string]int
	OccupancyLookups map[string]int
}

func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{
		Requests:         make(map[string]int),
		Proposals:        make(map[string]int),
		Imported:         make(map[string]int),
		OccupancyLookups: make(map[string]int),
	}
}

func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests[endpoint+" "+method+" "+status]++
}

func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}

func (m *MockMetricsRegistry) IncrementProposals(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Proposals[outcome]++
}

func (m *MockMetricsRegistry) RecordProposalLines(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LineCounts = append(m.LineCounts, count)
}

func (m *MockMetricsRegistry) IncrementBookingsImported(status string, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Imported[status] += n
}

func (m *MockMetricsRegistry) IncrementOccupancyCacheLookups(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OccupancyLookups[result]++
}
