package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values for EventsReceived.
const (
	OutcomeAccepted    = "accepted"
	OutcomeRateLimited = "rate_limited"
)

// Label values for EventsVerified.
const (
	ResultVerified   = "verified"
	ResultUnverified = "unverified"
)

var (
	// Intake metrics
	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookwell_events_received_total",
			Help: "Total number of webhook deliveries by admission outcome",
		},
		[]string{"outcome"},
	)

	EventsVerified = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hookwell_events_verified_total",
			Help: "Total number of accepted events by signature verification result",
		},
		[]string{"result"},
	)

	// Store metrics
	EventsEvicted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hookwell_events_evicted_total",
			Help: "Total number of events evicted to make room for newer ones",
		},
	)

	EventsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hookwell_events_deleted_total",
			Help: "Total number of events removed by delete requests",
		},
	)

	StoreEvents = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hookwell_store_events",
			Help: "Number of events currently retained",
		},
	)

	StoreCapacity = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hookwell_store_capacity",
			Help: "Maximum number of events the store retains",
		},
	)

	// Rate limiter metrics
	RateLimitIdentities = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "hookwell_rate_limit_identities",
			Help: "Number of client identities the rate limiter tracks",
		},
	)

	// HTTP metrics
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hookwell_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)
