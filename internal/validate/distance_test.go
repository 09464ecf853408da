package validate

import (
	"context"
	"testing"

	"github.com/PossumXI/Asgard/Heimdall/internal/events"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

func TestFirstWaypointDistanceNoPositionalItemsPasses(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{{Command: mission.CmdIdle}})
	sink := &events.MemorySink{}
	if !FirstWaypointDistance(context.Background(), items, 0, 0, 100, sink, "c1") {
		t.Fatal("expected pass when no positional item exists")
	}
}

func TestFirstWaypointDistanceWithinLimit(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0.0001, Lon: 0.0001},
	})
	sink := &events.MemorySink{}
	if !FirstWaypointDistance(context.Background(), items, 0, 0, 1000, sink, "c1") {
		t.Fatalf("expected pass within limit, got: %+v", sink.Events)
	}
}

func TestFirstWaypointDistanceExceedsLimit(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 10, Lon: 10},
	})
	sink := &events.MemorySink{}
	if FirstWaypointDistance(context.Background(), items, 0, 0, 1000, sink, "c1") {
		t.Fatal("expected failure beyond limit")
	}
	if !sink.HasID(events.IDFirstWaypointTooFar) {
		t.Error("expected FirstWaypointTooFar event")
	}
}

func TestFirstWaypointDistanceZeroMaxDisablesCheck(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 89, Lon: 179},
	})
	sink := &events.MemorySink{}
	if !FirstWaypointDistance(context.Background(), items, 0, 0, 0, sink, "c1") {
		t.Fatal("maxDist <= 0 should disable the check")
	}
}

func TestInterWaypointDistanceWithinLimit(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
		{Command: mission.CmdWaypoint, Lat: 0.001, Lon: 0.001},
	})
	sink := &events.MemorySink{}
	if !InterWaypointDistance(context.Background(), items, 1000, sink, "c1") {
		t.Fatalf("expected pass, got: %+v", sink.Events)
	}
}

func TestInterWaypointDistanceExceedsLimit(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
		{Command: mission.CmdWaypoint, Lat: 10, Lon: 10},
	})
	sink := &events.MemorySink{}
	if InterWaypointDistance(context.Background(), items, 1000, sink, "c1") {
		t.Fatal("expected failure beyond limit")
	}
	if !sink.HasID(events.IDWaypointDistanceTooFar) {
		t.Error("expected WaypointDistanceTooFar event")
	}
}

func TestInterWaypointDistanceGateCoincidence(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
		{Command: mission.CmdConditionGate, Lat: 0, Lon: 0},
	})
	sink := &events.MemorySink{}
	if InterWaypointDistance(context.Background(), items, 0, sink, "c1") {
		t.Fatal("expected failure for coincident gate")
	}
	if !sink.HasID(events.IDGateCoincidence) {
		t.Error("expected GateCoincidence event")
	}
}

func TestInterWaypointDistanceNonGateCoincidenceIsFine(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
	})
	sink := &events.MemorySink{}
	if !InterWaypointDistance(context.Background(), items, 0, sink, "c1") {
		t.Fatal("coincident non-gate waypoints should not fail")
	}
}
