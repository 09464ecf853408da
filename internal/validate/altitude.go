package validate

import (
	"context"

	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// HomeAltitude enforces that relative-altitude items require a known home
// altitude, and raises a non-fatal warning (via *warning) for any
// positional item whose normalized AMSL altitude is below home. Unlike
// every other violation in this sub-check, WaypointBelowHome does not fail
// the check or stop the scan; it only sets *warning. A NoHomeRelativeAlt
// violation short-circuits the scan and fails, matching every other
// sub-check's behavior.
func HomeAltitude(ctx context.Context, items storage.ItemReader, vehicle mission.VehicleState, sink events.Sink, checkID string, warning *bool) bool {
	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			emitStorageFailure(sink, checkID, i, err)
			return false
		}
		if !mission.HasPosition(it.Command) {
			continue
		}

		if it.AltRelative && !vehicle.HomeAltValid {
			sink.Emit(events.Event{
				ID: events.IDNoHomeRelativeAlt, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"index": i + 1},
			})
			return false
		}

		if vehicle.HomeAltValid {
			altAMSL := it.AltitudeAMSL(vehicle.HomeAlt)
			if altAMSL < vehicle.HomeAlt {
				sink.Emit(events.Event{
					ID: events.IDWaypointBelowHome, Severity: events.Warning, CheckID: checkID,
					Args: map[string]interface{}{"index": i + 1},
				})
				*warning = true
			}
		}
	}

	return true
}
