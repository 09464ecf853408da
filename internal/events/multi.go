package events

// Multi fans an emitted event out to every sink it wraps, in order. The
// orchestrator uses this to feed one Check call's events to the NATS sink,
// the websocket live feed, the Prometheus counters and the caller's own
// collector simultaneously.
type Multi []Sink

func (m Multi) Emit(e Event) {
	for _, s := range m {
		if s != nil {
			s.Emit(e)
		}
	}
}
