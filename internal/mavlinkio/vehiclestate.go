package mavlinkio

import (
	"sync"

	"github.com/PossumXI/Asgard/Heimdall/internal/mission"
)

// VehicleStateReader snapshots mission.VehicleState from the latest
// telemetry a live MAVLink link has reported. Heimdall's checker never
// reads telemetry directly — it reads one immutable VehicleState per Check
// call, so this type exists solely to produce that snapshot.
type VehicleStateReader struct {
	mu sync.RWMutex

	state mission.VehicleState
}

// NewVehicleStateReader seeds the reader with an initial (likely
// home-invalid) state; callers update it as GLOBAL_POSITION_INT/HOME_POSITION
// messages arrive.
func NewVehicleStateReader(vehicleType mission.VehicleType) *VehicleStateReader {
	return &VehicleStateReader{state: mission.VehicleState{Type: vehicleType}}
}

// UpdateHome records a HOME_POSITION report.
func (r *VehicleStateReader) UpdateHome(lat, lon, alt float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.HomeLat, r.state.HomeLon, r.state.HomeAlt = lat, lon, alt
	r.state.HomeValid = true
	r.state.HomeAltValid = true
}

// UpdateLanded records the flight controller's landed-detector state.
func (r *VehicleStateReader) UpdateLanded(landed bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state.Landed = landed
}

// Snapshot returns the current VehicleState by value for use by one Check
// call.
func (r *VehicleStateReader) Snapshot() mission.VehicleState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}
