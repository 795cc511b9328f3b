package observability

import "time"

// MetricsRegistry provides an interface for recording application metrics
// so handlers and collaborators never touch the Prometheus globals directly.
type MetricsRegistry interface {
	// HTTP Request metrics
	IncrementRequests(endpoint, method, status string)
	RecordRequestLatency(endpoint, method string, duration time.Duration)

	// Geolocation metrics
	IncrementGeoLookups(provider, outcome string)
	RecordGeoLookupLatency(provider string, duration time.Duration)
	IncrementLanguages(language string)

	// Signup metrics
	IncrementSignups(kind string)
	IncrementPersistErrors(kind string)
}

// PrometheusRegistry implements MetricsRegistry using the global Prometheus metrics
type PrometheusRegistry struct{}

// NewPrometheusRegistry creates a new PrometheusRegistry
func NewPrometheusRegistry() *PrometheusRegistry {
	return &PrometheusRegistry{}
}

func (r *PrometheusRegistry) IncrementRequests(endpoint, method, status string) {
	RequestCount.WithLabelValues(endpoint, method, status).Inc()
}

func (r *PrometheusRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {
	RequestLatency.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementGeoLookups(provider, outcome string) {
	GeoLookupCount.WithLabelValues(provider, outcome).Inc()
}

func (r *PrometheusRegistry) RecordGeoLookupLatency(provider string, duration time.Duration) {
	GeoLookupLatency.WithLabelValues(provider).Observe(duration.Seconds())
}

func (r *PrometheusRegistry) IncrementLanguages(language string) {
	LanguageCount.WithLabelValues(language).Inc()
}

func (r *PrometheusRegistry) IncrementSignups(kind string) {
	SignupCount.WithLabelValues(kind).Inc()
}

func (r *PrometheusRegistry) IncrementPersistErrors(kind string) {
	PersistErrors.WithLabelValues(kind).Inc()
}

// NoOpRegistry implements MetricsRegistry with no-op methods for testing
type NoOpRegistry struct{}

// NewNoOpRegistry creates a new NoOpRegistry
func NewNoOpRegistry() *NoOpRegistry {
	return &NoOpRegistry{}
}

func (r *NoOpRegistry) IncrementRequests(endpoint, method, status string)                    {}
func (r *NoOpRegistry) RecordRequestLatency(endpoint, method string, duration time.Duration) {}
func (r *NoOpRegistry) IncrementGeoLookups(provider, outcome string)                         {}
func (r *NoOpRegistry) RecordGeoLookupLatency(provider string, duration time.Duration)       {}
func (r *NoOpRegistry) IncrementLanguages(language string)                                   {}
func (r *NoOpRegistry) IncrementSignups(kind string)                                         {}
func (r *NoOpRegistry) IncrementPersistErrors(kind string)                                   {}
