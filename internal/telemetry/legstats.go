// Package telemetry supplies Heimdall's diagnostics and metrics: the
// gonum-backed leg-distance summary attached to a successful Result, and
// the Prometheus collectors the HTTP service exposes on /metrics.
package telemetry

import (
	"context"

	"gonum.org/v1/gonum/stat"

	"github.com/PossumXI/Asgard/Heimdall/internal/geo"
	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
	"github.com/PossumXI/Asgard/Heimdall/internal/storage"
)

// LegStats summarizes the great-circle leg lengths between successive
// positional items. It is purely diagnostic: the feasible/warning outcome
// of a check never depends on it.
type LegStats struct {
	Count  int
	MeanM  float64
	StdDevM float64
}

// ComputeLegStats walks items once and returns the mean and (population)
// standard deviation of inter-waypoint leg lengths. It returns ok=false
// when fewer than two positional items exist or a storage read fails, in
// which case the caller should simply omit diagnostics rather than fail
// the check — this package never influences feasibility.
func ComputeLegStats(ctx context.Context, items storage.ItemReader) (LegStats, bool) {
	var legs []float64
	havePrev := false
	var prevLat, prevLon float64

	for i := 0; i < items.Count(); i++ {
		it, err := items.ReadItem(ctx, i)
		if err != nil {
			return LegStats{}, false
		}
		if !mission.HasPosition(it.Command) {
			continue
		}
		if havePrev {
			legs = append(legs, geo.GreatCircleDistance(prevLat, prevLon, it.Lat, it.Lon))
		}
		prevLat, prevLon = it.Lat, it.Lon
		havePrev = true
	}

	if len(legs) == 0 {
		return LegStats{}, false
	}

	mean := stat.Mean(legs, nil)
	std := stat.PopStdDev(legs, nil)
	return LegStats{Count: len(legs), MeanM: mean, StdDevM: std}, true
}
