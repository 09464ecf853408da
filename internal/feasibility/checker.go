// Package feasibility implements the mission feasibility orchestrator: it
// runs the command-classifier, distance, geofence, altitude, takeoff and
// landing sub-checks in a fixed order, aggregates pass/fail across all of
// them, and derives the final Result.
package feasibility

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/geofence"
	"github.com/PossumXI/Asgard/Heimdall/internal/landing"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/policy"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
	"github.com/PossumXI/Asgard/Heimdall/internal/takeoff"
	"github.com/PossumXI/Asgard/Heimdall/internal/telemetry"
	"github.com/PossumXI/Asgard/Heimdall/internal/validate"
)

// Result is created fresh by every Check call and discarded after; no
// validator state persists across calls.
type Result struct {
	CheckID    string
	Feasible   bool
	Warning    bool
	HasTakeoff bool
	HasLanding bool
	Elapsed    time.Duration
	LegStats   *telemetry.LegStats
}

// Checker is a pure validator: it never commands a vehicle or talks to a
// flight controller directly. Every external fact it needs — mission items,
// vehicle state, fence geometry, tuning parameters — arrives through an
// injected collaborator.
type Checker struct {
	Items    storage.ItemReader
	Vehicle  mission.VehicleState
	Config   config.Config
	Geofence geofence.Geofence
	Params   config.ParamStore
	Sink     events.Sink
	Metrics  *telemetry.Metrics
	Logger   *logrus.Logger
}

// Check runs every sub-check and returns the aggregate Result. It never
// short-circuits across sub-checks — every reason a mission is infeasible
// is reported in one call — though individual sub-checks may short-circuit
// internally on the first violation they detect.
func (c *Checker) Check(ctx context.Context) Result {
	start := time.Now()
	checkID := uuid.NewString()
	logger := c.Logger
	if logger == nil {
		logger = logrus.New()
	}
	sink := c.Sink
	if sink == nil {
		sink = events.NullSink{}
	}

	result := Result{CheckID: checkID}

	if c.Items.Count() == 0 {
		result.Elapsed = time.Since(start)
		c.observe(result)
		logger.WithFields(logrus.Fields{"check_id": checkID, "feasible": false, "reason": "empty mission"}).Info("heimdall: check complete")
		return result
	}

	feasible := true

	if !c.Vehicle.HomeAltValid {
		sink.Emit(events.Event{ID: events.IDNoPositionLock, Severity: events.Info, CheckID: checkID})
		feasible = false
	} else if !validate.FirstWaypointDistance(ctx, c.Items, c.Vehicle.HomeLat, c.Vehicle.HomeLon, c.Config.MaxDistFirstWaypoint, sink, checkID) {
		feasible = false
	}

	if !validate.PerItem(ctx, c.Items, c.Vehicle, sink, checkID) {
		feasible = false
	}

	if !validate.InterWaypointDistance(ctx, c.Items, c.Config.MaxDistBetweenWaypoints, sink, checkID) {
		feasible = false
	}

	if c.Geofence != nil && c.Geofence.Valid() {
		if !validate.Geofence(ctx, c.Items, c.Vehicle, c.Geofence, sink, checkID) {
			feasible = false
		}
	}

	if !validate.HomeAltitude(ctx, c.Items, c.Vehicle, sink, checkID, &result.Warning) {
		feasible = false
	}

	takeoffResult := takeoff.Check(ctx, c.Items, c.Vehicle, c.Config, sink, checkID)
	result.HasTakeoff = takeoffResult.HasTakeoff
	if !takeoffResult.OK {
		feasible = false
	}

	landingResult := c.runLandingSequencer(ctx, sink, checkID)
	result.HasLanding = landingResult.HasLanding
	if !landingResult.OK {
		feasible = false
	}

	if !policy.Arbitrate(c.Config.Policy, result.HasTakeoff, result.HasLanding, sink, checkID) {
		feasible = false
	}

	result.Feasible = feasible
	result.Elapsed = time.Since(start)

	if feasible {
		if stats, ok := telemetry.ComputeLegStats(ctx, c.Items); ok {
			result.LegStats = &stats
		}
	}

	c.observe(result)
	logger.WithFields(logrus.Fields{
		"check_id":    checkID,
		"feasible":    result.Feasible,
		"warning":     result.Warning,
		"has_takeoff": result.HasTakeoff,
		"has_landing": result.HasLanding,
		"elapsed_ms":  result.Elapsed.Milliseconds(),
		"vehicle":     c.Vehicle.Type.String(),
	}).Info("heimdall: check complete")

	return result
}

func (c *Checker) runLandingSequencer(ctx context.Context, sink events.Sink, checkID string) landing.Result {
	switch c.Vehicle.Type {
	case mission.VehicleFixedWing:
		return landing.FixedWing(ctx, c.Items, c.Vehicle, c.Params, sink, checkID)
	case mission.VehicleVTOL:
		return landing.VTOL(ctx, c.Items, sink, checkID)
	default:
		return landing.Multicopter(ctx, c.Items, sink, checkID)
	}
}

func (c *Checker) observe(r Result) {
	if c.Metrics != nil {
		c.Metrics.ObserveCheck(r.Feasible, r.Elapsed)
	}
}
