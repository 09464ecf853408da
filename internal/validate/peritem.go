// Package validate implements the per-item, pairwise-distance, geofence and
// home-altitude sub-checks. Each function re-reads items from storage
// rather than assuming the caller has buffered the mission, since a large
// mission may not fit comfortably in memory all at once.
package validate

import (
	"context"
	"fmt"

	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// PerItem validates command support and per-command parameter ranges for
// every item, and the landed-at-index-0 rule. It short-circuits on the
// first violation it finds.
func PerItem(ctx context.Context, items storage.ItemReader, vehicle mission.VehicleState, sink events.Sink, checkID string) bool {
	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			emitStorageFailure(sink, checkID, i, err)
			return false
		}

		if !mission.Supported(it.Command) {
			sink.Emit(events.Event{
				ID: events.IDUnsupportedCommand, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"index": i + 1, "command": it.Command.String()},
			})
			return false
		}

		if it.Command == mission.CmdDoSetServo {
			if !validServoIndex(it.Param[0]) {
				sink.Emit(events.Event{
					ID: events.IDActuatorIndexOutOfBounds, Severity: events.Error, CheckID: checkID,
					Args: map[string]interface{}{"index": i + 1},
				})
				return false
			}
			if it.Param[1] < -config.PWMDefaultMax || it.Param[1] > config.PWMDefaultMax {
				sink.Emit(events.Event{
					ID: events.IDActuatorValueOutOfBounds, Severity: events.Error, CheckID: checkID,
					Args: map[string]interface{}{"index": i + 1},
				})
				return false
			}
		}

		if i == 0 && it.Command == mission.CmdLand && vehicle.Landed {
			sink.Emit(events.Event{
				ID: events.IDStartsWithLanding, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"index": i + 1},
			})
			return false
		}
	}
	return true
}

// validServoIndex reports whether v is an integral servo channel index in
// [0, 5].
func validServoIndex(v float64) bool {
	if v < 0 || v > 5 {
		return false
	}
	return v == float64(int(v))
}

func emitStorageFailure(sink events.Sink, checkID string, index int, err error) {
	sink.Emit(events.Event{
		ID: events.IDStorageFailure, Severity: events.Error, CheckID: checkID,
		Args: map[string]interface{}{"index": index + 1, "error": fmt.Sprint(err)},
	})
}
