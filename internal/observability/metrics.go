package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// total requests per endpoint, method and status code
	RequestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_requests_total",
			Help: "Total HTTP requests received",
		},
		[]string{"endpoint", "method", "status"},
	)

	// request latency in seconds per endpoint/method
	RequestLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landing_request_duration_seconds",
			Help:    "Histogram of request latencies",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method"},
	)

	// geolocation resolutions labelled by provider and outcome
	GeoLookupCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_geo_lookups_total",
			Help: "Total visitor geolocation resolutions",
		},
		[]string{"provider", "outcome"},
	)

	// latency of lookups that reached the provider
	GeoLookupLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "landing_geo_lookup_duration_seconds",
			Help:    "Duration of geolocation provider lookups",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2, 3},
		},
		[]string{"provider"},
	)

	// languages bound to requests
	LanguageCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_languages_total",
			Help: "Total requests per resolved language",
		},
		[]string{"language"},
	)

	// accepted signups by kind (waitlist, rsvp)
	SignupCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_signups_total",
			Help: "Total accepted signups",
		},
		[]string{"kind"},
	)

	// signups that could not be persisted
	PersistErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "landing_persist_errors_total",
			Help: "Total signup persistence errors",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestCount,
		RequestLatency,
		GeoLookupCount,
		GeoLookupLatency,
		LanguageCount,
		SignupCount,
		PersistErrors,
	)
}
