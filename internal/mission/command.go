// Package mission defines the mission item data model and the pure,
// table-driven predicates over the command enumeration that the rest of
// Heimdall's validators are built on.
package mission

// Command is a closed-world enumeration of mission item commands. It is
// modeled as a tagged sum rather than a raw integer so that the predicate
// tables below are exhaustive by construction: a command added here without
// a corresponding table entry is simply unsupported, never silently true.
type Command int

const (
	CmdUnknown Command = iota

	// Positional navigation.
	CmdWaypoint
	CmdLoiterUnlimited
	CmdLoiterTimeLimit
	CmdLoiterToAlt
	CmdTakeoff
	CmdVTOLTakeoff
	CmdLand
	CmdVTOLLand
	CmdReturnToLaunch

	// Non-positional navigation control.
	CmdIdle
	CmdDelay
	CmdConditionGate
	CmdDoJump
	CmdDoChangeSpeed
	CmdDoLandStart
	CmdDoSetHome

	// Actuator commands.
	CmdDoSetServo
	CmdDoSetActuator
	CmdDoWinch
	CmdDoGripper
	CmdDoTriggerControl

	// Payload / imaging commands.
	CmdDoDigicamControl
	CmdDoDigicamConfigure
	CmdDoMountControl
	CmdDoMountConfigure
	CmdDoSetROI
	CmdDoSetROILocation
	CmdDoSetROINone
	CmdDoSetCamTriggDist
	CmdDoSetCamTriggInterval
	CmdImageStartCapture
	CmdImageStopCapture
	CmdVideoStartCapture
	CmdVideoStopCapture
	CmdSetCameraMode
)

// String renders the command's symbolic name, used in event messages.
func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "CMD_UNKNOWN"
}

var commandNames = map[Command]string{
	CmdWaypoint:              "WAYPOINT",
	CmdLoiterUnlimited:       "LOITER_UNLIMITED",
	CmdLoiterTimeLimit:       "LOITER_TIME_LIMIT",
	CmdLoiterToAlt:           "LOITER_TO_ALT",
	CmdTakeoff:               "TAKEOFF",
	CmdVTOLTakeoff:           "VTOL_TAKEOFF",
	CmdLand:                  "LAND",
	CmdVTOLLand:              "VTOL_LAND",
	CmdReturnToLaunch:        "RETURN_TO_LAUNCH",
	CmdIdle:                  "IDLE",
	CmdDelay:                 "DELAY",
	CmdConditionGate:         "CONDITION_GATE",
	CmdDoJump:                "DO_JUMP",
	CmdDoChangeSpeed:         "DO_CHANGE_SPEED",
	CmdDoLandStart:           "DO_LAND_START",
	CmdDoSetHome:             "DO_SET_HOME",
	CmdDoSetServo:            "DO_SET_SERVO",
	CmdDoSetActuator:         "DO_SET_ACTUATOR",
	CmdDoWinch:               "DO_WINCH",
	CmdDoGripper:             "DO_GRIPPER",
	CmdDoTriggerControl:      "DO_TRIGGER_CONTROL",
	CmdDoDigicamControl:      "DO_DIGICAM_CONTROL",
	CmdDoDigicamConfigure:    "DO_DIGICAM_CONFIGURE",
	CmdDoMountControl:        "DO_MOUNT_CONTROL",
	CmdDoMountConfigure:      "DO_MOUNT_CONFIGURE",
	CmdDoSetROI:              "DO_SET_ROI",
	CmdDoSetROILocation:      "DO_SET_ROI_LOCATION",
	CmdDoSetROINone:          "DO_SET_ROI_NONE",
	CmdDoSetCamTriggDist:     "DO_SET_CAM_TRIGG_DIST",
	CmdDoSetCamTriggInterval: "DO_SET_CAM_TRIGG_INTERVAL",
	CmdImageStartCapture:     "IMAGE_START_CAPTURE",
	CmdImageStopCapture:      "IMAGE_STOP_CAPTURE",
	CmdVideoStartCapture:     "VIDEO_START_CAPTURE",
	CmdVideoStopCapture:      "VIDEO_STOP_CAPTURE",
	CmdSetCameraMode:         "SET_CAMERA_MODE",
}

// positional is the positional-navigation subset of the command enumeration.
var positional = map[Command]bool{
	CmdWaypoint:        true,
	CmdLoiterUnlimited: true,
	CmdLoiterTimeLimit: true,
	CmdLoiterToAlt:     true,
	CmdTakeoff:         true,
	CmdVTOLTakeoff:     true,
	CmdLand:            true,
	CmdVTOLLand:        true,
	CmdReturnToLaunch:  true,
}

// preTakeoffAllowed is the set of commands allowed to appear before the
// first takeoff item. It is the non-positional-control subset without
// CONDITION_GATE, plus DO_SET_SERVO and the payload/imaging subset.
var preTakeoffAllowed = map[Command]bool{
	CmdIdle:                  true,
	CmdDelay:                 true,
	CmdDoJump:                true,
	CmdDoChangeSpeed:         true,
	CmdDoSetHome:             true,
	CmdDoSetServo:            true,
	CmdDoLandStart:           true,
	CmdDoDigicamControl:      true,
	CmdDoDigicamConfigure:    true,
	CmdDoMountControl:        true,
	CmdDoMountConfigure:      true,
	CmdDoSetROI:              true,
	CmdDoSetROILocation:      true,
	CmdDoSetROINone:          true,
	CmdDoSetCamTriggDist:     true,
	CmdDoSetCamTriggInterval: true,
	CmdImageStartCapture:     true,
	CmdImageStopCapture:      true,
	CmdVideoStartCapture:     true,
	CmdVideoStopCapture:      true,
	CmdSetCameraMode:         true,
}

var commandByName = func() map[string]Command {
	m := make(map[string]Command, len(commandNames))
	for cmd, name := range commandNames {
		m[name] = cmd
	}
	return m
}()

// ParseCommand looks up a command by its symbolic name (e.g. "WAYPOINT").
// It is used to decode mission items supplied as JSON, where storing the
// numeric Command value would be meaningless across a wire boundary.
func ParseCommand(name string) (Command, bool) {
	cmd, ok := commandByName[name]
	return cmd, ok
}

// Supported reports whether cmd is part of the closed command enumeration.
// Anything outside the tables above — including the zero value CmdUnknown
// and any value beyond the last declared constant — is unsupported.
func Supported(cmd Command) bool {
	_, known := commandNames[cmd]
	return known
}

// HasPosition reports whether cmd carries a meaningful (lat, lon, alt).
func HasPosition(cmd Command) bool {
	return positional[cmd]
}

// AllowedBeforeTakeoff reports whether cmd may legally precede the
// mission's first TAKEOFF/VTOL_TAKEOFF item.
func AllowedBeforeTakeoff(cmd Command) bool {
	return preTakeoffAllowed[cmd]
}

// IsTakeoff reports whether cmd is a takeoff command.
func IsTakeoff(cmd Command) bool {
	return cmd == CmdTakeoff || cmd == CmdVTOLTakeoff
}

// IsLand reports whether cmd is a terminal landing command.
func IsLand(cmd Command) bool {
	return cmd == CmdLand || cmd == CmdVTOLLand
}
