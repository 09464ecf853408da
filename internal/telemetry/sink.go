package telemetry

import "github.com/PossumXI/Asgard/Heimdall/internal/events"

// EventCounterSink increments CheckEventsTotal for every event it observes.
// It is composed into events.Multi alongside the NATS/websocket/memory
// sinks rather than replacing any of them.
type EventCounterSink struct {
	Metrics *Metrics
}

func (s EventCounterSink) Emit(e events.Event) {
	if s.Metrics == nil {
		return
	}
	s.Metrics.CheckEventsTotal.WithLabelValues(e.ID).Inc()
}
