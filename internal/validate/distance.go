package validate

import (
	"context"

	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/geo"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// FirstWaypointDistance walks the mission for the first positional item and
// checks its great-circle distance from home. A mission with no positional
// items always passes. The orchestrator only invokes this check once home
// altitude is known valid.
func FirstWaypointDistance(ctx context.Context, items storage.ItemReader, homeLat, homeLon, maxDist float64, sink events.Sink, checkID string) bool {
	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			emitStorageFailure(sink, checkID, i, err)
			return false
		}
		if !mission.HasPosition(it.Command) {
			continue
		}

		dist := geo.GreatCircleDistance(homeLat, homeLon, it.Lat, it.Lon)
		if maxDist > 0 && dist >= maxDist {
			sink.Emit(events.Event{
				ID: events.IDFirstWaypointTooFar, Severity: events.Error, CheckID: checkID,
				Args: map[string]interface{}{"dist_m": dist, "max_m": maxDist},
			})
			return false
		}
		return true
	}
	return true
}

// InterWaypointDistance checks the great-circle distance between every pair
// of successive positional items, plus the CONDITION_GATE coincidence rule.
// CONDITION_GATE items take part in this walk alongside the positional
// items, since the coincidence rule is about a gate's own position.
func InterWaypointDistance(ctx context.Context, items storage.ItemReader, maxDist float64, sink events.Sink, checkID string) bool {
	havePrev := false
	var prevLat, prevLon float64
	var prevCmd mission.Command

	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			emitStorageFailure(sink, checkID, i, err)
			return false
		}
		if !mission.HasPosition(it.Command) && it.Command != mission.CmdConditionGate {
			continue
		}

		if havePrev {
			dist := geo.GreatCircleDistance(prevLat, prevLon, it.Lat, it.Lon)

			if maxDist > 0 && dist > maxDist {
				sink.Emit(events.Event{
					ID: events.IDWaypointDistanceTooFar, Severity: events.Error, CheckID: checkID,
					Args: map[string]interface{}{"index": i + 1, "dist_m": dist, "max_m": maxDist},
				})
				return false
			}

			if dist < config.GateCoincidenceDistance && (it.Command == mission.CmdConditionGate || prevCmd == mission.CmdConditionGate) {
				sink.Emit(events.Event{
					ID: events.IDGateCoincidence, Severity: events.Error, CheckID: checkID,
					Args: map[string]interface{}{"index": i + 1},
				})
				return false
			}
		}

		prevLat, prevLon, prevCmd = it.Lat, it.Lon, it.Command
		havePrev = true
	}
	return true
}
