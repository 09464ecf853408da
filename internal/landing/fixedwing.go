// Package landing implements the vehicle-type-dependent landing sequencers:
// fixed-wing glide-slope geometry, VTOL land-start ordering, and the
// permissive multicopter scan.
package landing

import (
	"context"
	"math"

	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/geo"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// Result carries the sequencer's derived has_landing flag and pass/fail
// status back to the orchestrator.
type Result struct {
	HasLanding bool
	OK         bool
}

// FixedWing runs the fixed-wing landing sequencer: land-start uniqueness,
// RTL-before-land-start ordering, and the approach/glide-slope geometry on
// the LAND item itself.
func FixedWing(ctx context.Context, items storage.ItemReader, vehicle mission.VehicleState, params config.ParamStore, sink events.Sink, checkID string) Result {
	hasLanding := false
	landingValid := false
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

		case mission.CmdLand:
			hasLanding = true
			if i == 0 {
				sink.Emit(events.Event{ID: events.IDStartsWithLanding, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: true, OK: false}
			}

			fwLndAng, ok := params.Find("FW_LND_ANG")
			if !ok {
				sink.Emit(events.Event{ID: events.IDLandAngleParamMissing, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: true, OK: false}
			}

			entrance, err := items.ReadItem(ctx, i-1)
			if err != nil {
				emitStorageFailure(sink, checkID, i-1)
				return Result{HasLanding: true, OK: false}
			}
			if !mission.HasPosition(entrance.Command) {
				sink.Emit(events.Event{ID: events.IDApproachRequired, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: true, OK: false}
			}

			landAlt := it.AltitudeAMSL(vehicle.HomeAlt)
			entranceAlt := entrance.AltitudeAMSL(vehicle.HomeAlt)
			deltaH := entranceAlt - landAlt
			if deltaH < config.DeltaHEpsilon {
				sink.Emit(events.Event{ID: events.IDApproachBelowLand, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: true, OK: false}
			}

			var d float64
			switch entrance.Command {
			case mission.CmdWaypoint:
				d = geo.GreatCircleDistance(entrance.Lat, entrance.Lon, it.Lat, it.Lon)
			case mission.CmdLoiterToAlt:
				bigD := geo.GreatCircleDistance(entrance.Lat, entrance.Lon, it.Lat, it.Lon)
				r := math.Abs(entrance.LoiterRadius)
				if bigD <= r {
					sink.Emit(events.Event{ID: events.IDLandInsideOrbit, Severity: events.Error, CheckID: checkID})
					return Result{HasLanding: true, OK: false}
				}
				d = math.Sqrt(bigD*bigD - r*r)
			default:
				sink.Emit(events.Event{ID: events.IDUnsupportedApproach, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: true, OK: false}
			}

			slope := deltaH / d
			slopeMax := math.Tan(geo.DegToRad(fwLndAng + config.GlideSlopeBufferDeg))
			if slope > slopeMax {
				sink.Emit(events.Event{
					ID: events.IDGlideSlopeTooSteep, Severity: events.Error, CheckID: checkID,
					Args: map[string]interface{}{"deg": fwLndAng},
				})
				sink.Emit(events.Event{
					ID: events.IDCorrectGlideSlope, Severity: events.Error, CheckID: checkID,
					Args: map[string]interface{}{
						"acceptable_entrance_alt": math.Floor(slopeMax * d),
						"acceptable_landing_dist": math.Ceil(deltaH / slopeMax),
					},
				})
				return Result{HasLanding: true, OK: false}
			}

			landingValid = true
			landingApproachIdx = i

		case mission.CmdReturnToLaunch:
			if hasLanding && doLandStartIdx >= 0 && doLandStartIdx < i {
				sink.Emit(events.Event{ID: events.IDLandBeforeRTL, Severity: events.Error, CheckID: checkID})
				return Result{HasLanding: hasLanding, OK: false}
			}
		}
	}

	if hasLanding && (!landingValid || doLandStartIdx > landingApproachIdx) {
		sink.Emit(events.Event{ID: events.IDInvalidLandStart, Severity: events.Error, CheckID: checkID})
		return Result{HasLanding: hasLanding, OK: false}
	}

	return Result{HasLanding: hasLanding, OK: true}
}

func emitStorageFailure(sink events.Sink, checkID string, index int) {
	sink.Emit(events.Event{
		ID: events.IDStorageFailure, Severity: events.Error, CheckID: checkID,
		Args: map[string]interface{}{"index": index + 1},
	})
}
