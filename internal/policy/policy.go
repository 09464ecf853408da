// Package policy implements the required-items policy arbitrator: given a
// configured RequiredPolicy and the derived has-takeoff/has-landing facts,
// it decides whether their combination satisfies policy.
package policy

import (
	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
)

// Arbitrate checks derived hasTakeoff/hasLanding against p and emits the
// matching failure event. An unrecognized policy value always passes.
func Arbitrate(p config.RequiredPolicy, hasTakeoff, hasLanding bool, sink events.Sink, checkID string) bool {
	switch p {
	case config.PolicyNone:
		return true

	case config.PolicyRequireTakeoff:
		if hasTakeoff {
			return true
		}
		sink.Emit(events.Event{ID: events.IDTakeoffRequired, Severity: events.Error, CheckID: checkID})
		return false

	case config.PolicyRequireLanding:
		if hasLanding {
			return true
		}
		sink.Emit(events.Event{ID: events.IDLandingRequired, Severity: events.Error, CheckID: checkID})
		return false

	case config.PolicyRequireBoth:
		if hasTakeoff && hasLanding {
			return true
		}
		sink.Emit(events.Event{ID: events.IDTakeoffOrLandingMissing, Severity: events.Error, CheckID: checkID})
		return false

	case config.PolicyRequireParity:
		if hasTakeoff == hasLanding {
			return true
		}
		if hasTakeoff {
			sink.Emit(events.Event{ID: events.IDAddLandingOrRemoveTakeoff, Severity: events.Error, CheckID: checkID})
		} else {
			sink.Emit(events.Event{ID: events.IDAddTakeoffOrRemoveLanding, Severity: events.Error, CheckID: checkID})
		}
		return false

	default:
		return true
	}
}
