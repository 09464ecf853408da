package mission

import (
	"encoding/json"
	"testing"
)

func TestAltitudeAMSLRelative(t *testing.T) {
	it := Item{Alt: 50, AltRelative: true}
	if got := it.AltitudeAMSL(100); got != 150 {
		t.Errorf("AltitudeAMSL = %v, want 150", got)
	}
}

func TestAltitudeAMSLAbsolute(t *testing.T) {
	it := Item{Alt: 150, AltRelative: false}
	if got := it.AltitudeAMSL(100); got != 150 {
		t.Errorf("AltitudeAMSL = %v, want 150", got)
	}
}

func TestItemJSONRoundTrip(t *testing.T) {
	it := Item{
		Command:      CmdLoiterToAlt,
		Lat:          37.1,
		Lon:          -122.2,
		Alt:          120,
		AltRelative:  true,
		AcceptRadius: 5,
		LoiterRadius: -80,
		Param:        [7]float64{1, 2, 3, 4, 5, 6, 7},
	}

	data, err := json.Marshal(it)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Item
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got != it {
		t.Errorf("round-trip mismatch: got %+v, want %+v", got, it)
	}
}

func TestItemJSONUnmarshalRejectsUnknownCommand(t *testing.T) {
	var it Item
	err := json.Unmarshal([]byte(`{"command":"NOT_REAL"}`), &it)
	if err == nil {
		t.Error("expected an error unmarshaling an unknown command name")
	}
}
