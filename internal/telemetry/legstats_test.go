package telemetry

import (
	"context"
	"math"
	"testing"

	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

func TestComputeLegStatsNoPositionalItems(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{{Command: mission.CmdIdle}})
	_, ok := ComputeLegStats(context.Background(), items)
	if ok {
		t.Error("expected ok=false with no positional items")
	}
}

func TestComputeLegStatsSingleLeg(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0.01},
	})
	stats, ok := ComputeLegStats(context.Background(), items)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if stats.Count != 1 {
		t.Errorf("Count = %d, want 1", stats.Count)
	}
	if stats.StdDevM != 0 {
		t.Errorf("StdDevM for a single leg should be 0, got %v", stats.StdDevM)
	}
	if stats.MeanM <= 0 {
		t.Errorf("MeanM should be positive, got %v", stats.MeanM)
	}
}

func TestComputeLegStatsMultipleLegs(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0.01},
		{Command: mission.CmdWaypoint, Lat: 0.01, Lon: 0.01},
	})
	stats, ok := ComputeLegStats(context.Background(), items)
	if !ok {
		t.Fatal("expected ok=true")
	}
	if stats.Count != 2 {
		t.Errorf("Count = %d, want 2", stats.Count)
	}
	if math.IsNaN(stats.StdDevM) {
		t.Error("StdDevM should not be NaN")
	}
}

func TestComputeLegStatsStorageFailure(t *testing.T) {
	items := storage.NewMemoryReader([]mission.Item{
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0},
		{Command: mission.CmdWaypoint, Lat: 0, Lon: 0.01},
	})
	items.FailAt = 1
	_, ok := ComputeLegStats(context.Background(), items)
	if ok {
		t.Error("expected ok=false on storage read failure")
	}
}
