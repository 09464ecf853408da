package mission

import (
	"encoding/json"
	"fmt"
)

// Item is a single mission item as it is persisted by the mission storage
// collaborator. It is read by value — the validator never mutates storage.
type Item struct {
	Command Command

	Lat float64 // degrees
	Lon float64 // degrees

	Alt         float64 // meters; AMSL unless AltRelative
	AltRelative bool    // true if Alt is relative to home altitude

	AcceptRadius float64 // meters, waypoint acceptance tolerance
	LoiterRadius float64 // meters, signed: sign encodes turn direction

	Param [7]float64 // generic numeric parameters, command-dependent meaning
}

// AltitudeAMSL normalizes the item's altitude to above-mean-sea-level given
// a known home altitude. Callers must not invoke this when AltRelative is
// true and home altitude is unknown (see the VehicleState.HomeAltValid
// checks the validators make first).
func (it Item) AltitudeAMSL(homeAlt float64) float64 {
	if it.AltRelative {
		return it.Alt + homeAlt
	}
	return it.Alt
}

// itemJSON is Item's wire shape: Command as a symbolic name rather than its
// internal numeric enum value, so a -replay mission file stays stable
// across reorderings of the Command constants.
type itemJSON struct {
	Command      string     `json:"command"`
	Lat          float64    `json:"lat"`
	Lon          float64    `json:"lon"`
	Alt          float64    `json:"alt"`
	AltRelative  bool       `json:"alt_relative"`
	AcceptRadius float64    `json:"accept_radius"`
	LoiterRadius float64    `json:"loiter_radius"`
	Param        [7]float64 `json:"param"`
}

func (it Item) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemJSON{
		Command:      it.Command.String(),
		Lat:          it.Lat,
		Lon:          it.Lon,
		Alt:          it.Alt,
		AltRelative:  it.AltRelative,
		AcceptRadius: it.AcceptRadius,
		LoiterRadius: it.LoiterRadius,
		Param:        it.Param,
	})
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var raw itemJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	cmd, ok := ParseCommand(raw.Command)
	if !ok {
		return fmt.Errorf("mission: unknown command %q", raw.Command)
	}
	it.Command = cmd
	it.Lat, it.Lon, it.Alt = raw.Lat, raw.Lon, raw.Alt
	it.AltRelative = raw.AltRelative
	it.AcceptRadius, it.LoiterRadius = raw.AcceptRadius, raw.LoiterRadius
	it.Param = raw.Param
	return nil
}
