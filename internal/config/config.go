// Package config holds the validator's tunable limits and the parameter
// store collaborator interface it reads vehicle-calibration values through.
package config

// RequiredPolicy selects which of takeoff/landing the mission must contain.
type RequiredPolicy int

const (
	PolicyNone RequiredPolicy = iota
	PolicyRequireTakeoff
	PolicyRequireLanding
	PolicyRequireBoth
	PolicyRequireParity
)

// Config holds the operator-tunable limits a mission is checked against.
type Config struct {
	// MaxDistFirstWaypoint is the maximum allowed great-circle distance, in
	// meters, from home to the first positional item. <= 0 disables the check.
	MaxDistFirstWaypoint float64

	// MaxDistBetweenWaypoints is the maximum allowed great-circle distance,
	// in meters, between successive positional items. <= 0 disables the check.
	MaxDistBetweenWaypoints float64

	// Policy selects the takeoff/landing requirement.
	Policy RequiredPolicy

	// DefaultAcceptRadius is used for takeoff altitude validation when an
	// item does not specify its own acceptance radius.
	DefaultAcceptRadius float64
}

// Platform-wide constants referenced by more than one validator. These are
// field-calibrated tolerances and must be applied exactly.
const (
	// NavEpsilonPosition is the acceptance-radius epsilon below which an
	// item's own acceptance radius is treated as unset.
	NavEpsilonPosition = 0.05 // meters

	// PWMDefaultMax bounds DO_SET_SERVO's PWM value parameter.
	PWMDefaultMax = 2500

	// GateCoincidenceDistance is the minimum leg length, in meters, below
	// which a CONDITION_GATE-adjacent leg is considered degenerate.
	GateCoincidenceDistance = 0.05

	// GlideSlopeBufferDeg absorbs floating-point noise at the fixed-wing
	// landing-angle boundary.
	GlideSlopeBufferDeg = 0.1

	// DeltaHEpsilon is the minimum required altitude loss between a landing
	// approach entrance and the landing point.
	DeltaHEpsilon = 1e-6
)

// ParamStore looks up scalar vehicle-calibration parameters by name, e.g.
// "FW_LND_ANG". Find's second return is false when the parameter is absent.
type ParamStore interface {
	Find(name string) (value float64, ok bool)
}

// MapParamStore is a ParamStore backed by a plain map, used by tests and by
// the CLI's -replay mode.
type MapParamStore map[string]float64

func (m MapParamStore) Find(name string) (float64, bool) {
	v, ok := m[name]
	return v, ok
}
