package landing

import (
	"context"

	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// VTOL runs the VTOL landing sequencer: the same land-start uniqueness and
// RTL-ordering rules as FixedWing, but no glide-slope geometry — a VTOL
// transitions to vertical descent rather than flying a fixed approach.
func VTOL(ctx context.Context, items storage.ItemReader, sink events.Sink, checkID string) Result {
	hasLanding := false
	doLandStartIdx := -1
	landingApproachIdx := -1

	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			emitStorageFailure(sink, checkID, i)
			return Result{HasLanding: hasLanding, OK: false}
		}

		switch it.Command {
		case mission.CmdDoLandStart:
			if hasLanding {
				sink.Emit(events.Event{ID: events.IDMultipleLandStart, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: true, OK: false}
			}
			hasLanding = true
			doLandStartIdx = i

		case mission.CmdLand, mission.CmdVTOLLand:
			hasLanding = true
			if i == 0 {
				sink.Emit(events.Event{ID: events.IDStartsWithLanding, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: true, OK: false}
			}
			landingApproachIdx = i

		case mission.CmdReturnToLaunch:
			if hasLanding && doLandStartIdx >= 0 && doLandStartIdx < i {
				sink.Emit(events.Event{ID: events.IDLandBeforeRTL, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: hasLanding, OK: false}
			}
		}
	}

	if hasLanding && doLandStartIdx > landingApproachIdx {
		sink.Emit(events.Event{ID: events.IDInvalidLandStart, Severity: events.Error, CheckID: checkID})
		return Result{HasLanding: hasLanding, OK: false}
	}

	return Result{HasLanding: hasLanding, OK: true}
}

// Multicopter (and any type that is neither fixed-wing nor VTOL) performs
// no landing validation; has_landing is derived by scanning for any LAND,
// VTOL_LAND or DO_LAND_START item. It fails only on a storage read error.
func Multicopter(ctx context.Context, items storage.ItemReader, sink events.Sink, checkID string) Result {
	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			emitStorageFailure(sink, checkID, i)
			return Result{OK: false}
		}
		if mission.IsLand(it.Command) || it.Command == mission.CmdDoLandStart {
			return Result{HasLanding: true, OK: true}
		}
	}
	return Result{HasLanding: false, OK: true}
}
