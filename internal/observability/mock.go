package observability

import (
	"strings"
	"sync"
	"time"
)

// MockMetricsRegistry is a MetricsRegistry for tests that counts every call
// under a "metric:label1:label2" key.
type MockMetricsRegistry struct {
	mu     sync.Mutex
	counts map[string]int
}

// NewMockMetricsRegistry creates an empty MockMetricsRegistry.
func NewMockMetricsRegistry() *MockMetricsRegistry {
	return &MockMetricsRegistry{counts: make(map[string]int)}
}

func (m *MockMetricsRegistry) inc(parts ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[strings.Join(parts, ":")]++
}

// Count returns how many times the metric with the given labels was recorded.
func (m *MockMetricsRegistry) Count(parts ...string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts[strings.Join(parts, ":")]
}

func (m *MockMetricsRegistry) IncrementRequests(endpoint, method, status string) {
	m.inc("requests", endpoint, method, status)
}

func (m *MockMetricsRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	m.inc("request_latency", endpoint, method)
}

func (m *MockMetricsRegistry) IncrementGeoLookups(provider, outcome string) {
	m.inc("geo_lookups", provider, outcome)
}

func (m *MockMetricsRegistry) RecordGeoLookupLatency(provider string, duration time.Duration) {
	m.inc("geo_latency", provider)
}

func (m *MockMetricsRegistry) IncrementLanguages(language string) {
	m.inc("languages", language)
}

func (m *MockMetricsRegistry) IncrementSignups(kind string) {
	m.inc("signups", kind)
}

func (m *MockMetricsRegistry) IncrementPersistErrors(kind string) {
	m.inc("persist_errors", kind)
}
