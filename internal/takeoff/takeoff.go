// Package takeoff implements the takeoff sequencer: a single forward pass
// that locates the first takeoff item, checks its altitude-above-home
// against the acceptance radius, and enforces that nothing positional
// precedes it.
package takeoff

import (
	"context"

	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// Result carries the sequencer's findings back to the orchestrator.
type Result struct {
	HasTakeoff bool
	OK         bool
}

// Check runs the sequencer over items. cfg.DefaultAcceptRadius is used when
// an item's own AcceptRadius is at or below config.NavEpsilonPosition.
func Check(ctx context.Context, items storage.ItemReader, vehicle mission.VehicleState, cfg config.Config, sink events.Sink, checkID string) Result {
	firstTakeoffIdx := -1

	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			sink.Emit(events.Event{
				ID: events.IDStorageFailure, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"index": i + 1},
			})
			return Result{OK: false}
		}

		if !mission.IsTakeoff(it.Command) {
			continue
		}

		if firstTakeoffIdx >= 0 {
			// Only the first takeoff's altitude geometry gates feasibility;
			// a second takeoff item is tracked but not re-validated here.
			continue
		}
		firstTakeoffIdx = i

		aboveHome := it.Alt
		if !it.AltRelative {
			aboveHome = it.Alt - vehicle.HomeAlt
		}

		acceptRadius := cfg.DefaultAcceptRadius
		if it.AcceptRadius > config.NavEpsilonPosition {
			acceptRadius = it.AcceptRadius
		}

		if aboveHome-1.0 < acceptRadius {
			sink.Emit(events.Event{
				ID: events.IDTakeoffAltTooLow, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"min_m": acceptRadius + 1.0},
			})
			return Result{HasTakeoff: true, OK: false}
		}
	}

	if firstTakeoffIdx < 0 {
		return Result{HasTakeoff: false, OK: true}
	}

	if firstTakeoffIdx > 0 {
		if !precedingItemsAllowed(ctx, items, firstTakeoffIdx, sink, checkID) {
			return Result{HasTakeoff: true, OK: false}
		}
	}

	return Result{HasTakeoff: true, OK: true}
}

// precedingItemsAllowed requires every item strictly before idx to satisfy
// mission.AllowedBeforeTakeoff. The result is ANDed across all of them —
// a single disallowed item anywhere before the takeoff fails the check,
// not just a disallowed item immediately preceding it.
func precedingItemsAllowed(ctx context.Context, items storage.ItemReader, idx int, sink events.Sink, checkID string) bool {
	for i := 0; i < idx; i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			sink.Emit(events.Event{
				ID: events.IDStorageFailure, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"index": i + 1},
			})
			return false
		}
		if !mission.AllowedBeforeTakeoff(it.Command) {
			sink.Emit(events.Event{ID: events.IDTakeoffNotFirst, Severity: events.Error, CheckID: checkID})
			return false
		}
	}
	return true
}
