package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the prometheus collectors for orchestrated requests.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	ComputeDuration *prometheus.HistogramVec
	TierFailures    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propwise_requests_total",
				Help: "Total number of orchestrated requests by kind and terminal state",
			},
			[]string{"kind", "state", "error_kind"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propwise_cache_lookups_total",
				Help: "Cache lookups by kind and result (hit, miss)",
			},
			[]string{"kind", "result"},
		),
		ComputeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "propwise_request_duration_seconds",
				Help:    "Orchestrated request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"kind", "cache"},
		),
		TierFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "propwise_cache_tier_failures_total",
				Help: "Cache tier operation failures that were degraded to a miss",
			},
			[]string{"tier", "operation"},
		),
	}

	for _, c := range []prometheus.Collector{m.RequestsTotal, m.CacheLookups, m.ComputeDuration, m.TierFailures} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}
