package validate

import (
	"context"

	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/geofence"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// Geofence validates every positional item against the geofence
// collaborator, normalizing relative altitudes to AMSL first. It is skipped
// entirely by the caller when the fence is not configured.
func Geofence(ctx context.Context, items storage.ItemReader, vehicle mission.VehicleState, fence geofence.Geofence, sink events.Sink, checkID string) bool {
	if fence.RequiresHome() && !vehicle.HomeValid {
		sink.Emit(events.Event{ID: events.IDGeofenceRequiresHome, Severity: events.Error, CheckID: checkID})
		return false
	}

	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			emitStorageFailure(sink, checkID, i, err)
			return false
		}

		if it.AltRelative && !vehicle.HomeAltValid {
			sink.Emit(events.Event{ID: events.IDGeofenceRequiresHome, Severity: events.Error, CheckID: checkID})
			return false
		}

		altAMSL := it.AltitudeAMSL(vehicle.HomeAlt)

		if !mission.HasPosition(it.Command) {
			continue
		}

		if !fence.Contains(it.Lat, it.Lon, altAMSL) {
			sink.Emit(events.Event{
				ID: events.IDGeofenceViolation, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"index": i + 1},
			})
			return false
		}
	}
	return true
}
