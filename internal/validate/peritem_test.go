package validate

import (
	"context"
	"testing"

	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

func TestPerItemPassesSupportedMission(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdTakeoff, Alt: 20},
		{Command: mission.CmdWaypoint, Lat: 1, Lon: 1, Alt: 20},
		{Command: mission.CmdLand},
	})
	sink := &events.MemorySink{}
	if !PerItem(context.Background(), items, mission.VehicleState{}, sink, "c1") {
		t.Fatalf("expected pass, got failures: %+v", sink.Events)
	}
}

func TestPerItemRejectsUnsupportedCommand(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{{Command: mission.CmdUnknown}})
	sink := &events.MemorySink{}
	if PerItem(context.Background(), items, mission.VehicleState{}, sink, "c1") {
		t.Fatal("expected failure for unsupported command")
	}
	if !sink.HasID(events.IDUnsupportedCommand) {
		t.Error("expected UnsupportedCommand event")
	}
}

func TestPerItemRejectsServoIndexOutOfBounds(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdDoSetServo, Param: [7]float64{9, 1000}},
	})
	sink := &events.MemorySink{}
	if PerItem(context.Background(), items, mission.VehicleState{}, sink, "c1") {
		t.Fatal("expected failure for out-of-range servo index")
	}
	if !sink.HasID(events.IDActuatorIndexOutOfBounds) {
		t.Error("expected ActuatorIndexOutOfBounds event")
	}
}

func TestPerItemRejectsServoPWMOutOfBounds(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdDoSetServo, Param: [7]float64{0, 9000}},
	})
	sink := &events.MemorySink{}
	if PerItem(context.Background(), items, mission.VehicleState{}, sink, "c1") {
		t.Fatal("expected failure for out-of-range PWM")
	}
	if !sink.HasID(events.IDActuatorValueOutOfBounds) {
		t.Error("expected ActuatorValueOutOfBounds event")
	}
}

func TestPerItemRejectsLandedStartWithLanding(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{{Command: mission.CmdLand}})
	sink := &events.MemorySink{}
	vehicle := mission.VehicleState{Landed: true}
	if PerItem(context.Background(), items, vehicle, sink, "c1") {
		t.Fatal("expected failure when mission starts with LAND and vehicle is landed")
	}
	if !sink.HasID(events.IDStartsWithLanding) {
		t.Error("expected StartsWithLanding event")
	}
}

func TestPerItemPropagatesStorageFailure(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{{Command: mission.CmdWaypoint}})
	items.FailAt = 0
	sink := &events.MemorySink{}
	if PerItem(context.Background(), items, mission.VehicleState{}, sink, "c1") {
		t.Fatal("expected failure on storage read error")
	}
	if !sink.HasID(events.IDStorageFailure) {
		t.Error("expected StorageFailure event")
	}
}
