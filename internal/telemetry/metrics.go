package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Heimdall's Prometheus collectors.
type Metrics struct {
	ChecksTotal      *prometheus.CounterVec
	CheckEventsTotal *prometheus.CounterVec
	CheckDuration    prometheus.Histogram
}

// NewMetrics registers Heimdall's collectors against the default registry,
// matching the promauto convention Pricilla's metrics package uses.
func NewMetrics() *Metrics {
	m := &Metrics{}

	m.ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asgard",
			Subsystem: "heimdall",
			Name:      "checks_total",
			Help:      "Total mission feasibility checks, labeled by outcome.",
		},
		[]string{"feasible"},
	)

	m.CheckEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "asgard",
			Subsystem: "heimdall",
			Name:      "check_events_total",
			Help:      "Events emitted during mission feasibility checks, labeled by event ID.",
		},
		[]string{"event_id"},
	)

	m.CheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "asgard",
			Subsystem: "heimdall",
			Name:      "check_duration_seconds",
			Help:      "Wall-clock duration of a mission feasibility check.",
			Buckets:   prometheus.DefBuckets,
		},
	)

	return m
}

// ObserveCheck records the outcome of one Check call.
func (m *Metrics) ObserveCheck(feasible bool, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ChecksTotal.WithLabelValues(boolLabel(feasible)).Inc()
	m.CheckDuration.Observe(elapsed.Seconds())
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
