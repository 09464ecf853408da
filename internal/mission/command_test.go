package mission

import "testing"

func TestSupportedKnowsEveryDeclaredCommand(t *testing.T) {
	for cmd, name := range commandNames {
		if !Supported(cmd) {
			t.Errorf("Supported(%s) = false, want true", name)
		}
	}
}

func TestSupportedRejectsUnknown(t *testing.T) {
	if Supported(CmdUnknown) {
		t.Error("Supported(CmdUnknown) = true, want false")
	}
	if Supported(Command(9999)) {
		t.Error("Supported(9999) = true, want false")
	}
}

func TestHasPositionMatchesPositionalSet(t *testing.T) {
	want := map[Command]bool{
		CmdWaypoint:       true,
		CmdLoiterToAlt:    true,
		CmdTakeoff:        true,
		CmdLand:           true,
		CmdReturnToLaunch: true,
		CmdIdle:           false,
		CmdDoSetServo:     false,
		CmdDoLandStart:    false,
	}
	for cmd, expect := range want {
		if got := HasPosition(cmd); got != expect {
			t.Errorf("HasPosition(%s) = %v, want %v", cmd, got, expect)
		}
	}
}

func TestAllowedBeforeTakeoffExcludesPositionalItems(t *testing.T) {
	for cmd := range positional {
		if AllowedBeforeTakeoff(cmd) {
			t.Errorf("AllowedBeforeTakeoff(%s) = true, want false (positional items may not precede takeoff)", cmd)
		}
	}
}

func TestAllowedBeforeTakeoffAllowsNonPositionalControl(t *testing.T) {
	for _, cmd := range []Command{CmdIdle, CmdDelay, CmdDoSetServo, CmdDoLandStart, CmdDoSetHome} {
		if !AllowedBeforeTakeoff(cmd) {
			t.Errorf("AllowedBeforeTakeoff(%s) = false, want true", cmd)
		}
	}
}

func TestIsTakeoffAndIsLand(t *testing.T) {
	if !IsTakeoff(CmdTakeoff) || !IsTakeoff(CmdVTOLTakeoff) {
		t.Error("IsTakeoff should recognize both takeoff variants")
	}
	if IsTakeoff(CmdLand) {
		t.Error("IsTakeoff(CmdLand) = true, want false")
	}
	if !IsLand(CmdLand) || !IsLand(CmdVTOLLand) {
		t.Error("IsLand should recognize both landing variants")
	}
	if IsLand(CmdDoLandStart) {
		t.Error("IsLand(CmdDoLandStart) = true, want false — DO_LAND_START is not itself a terminal landing command")
	}
}

func TestStringAndParseCommandRoundTrip(t *testing.T) {
	for cmd, name := range commandNames {
		if got := cmd.String(); got != name {
			t.Errorf("Command(%d).String() = %q, want %q", cmd, got, name)
		}
		parsed, ok := ParseCommand(name)
		if !ok || parsed != cmd {
			t.Errorf("ParseCommand(%q) = (%v, %v), want (%v, true)", name, parsed, ok, cmd)
		}
	}
}

func TestParseCommandRejectsUnknownName(t *testing.T) {
	if _, ok := ParseCommand("NOT_A_REAL_COMMAND"); ok {
		t.Error("ParseCommand should reject an unrecognized name")
	}
}

func TestUnknownCommandStringsDoNotCollide(t *testing.T) {
	if CmdUnknown.String() != "CMD_UNKNOWN" {
		t.Errorf("CmdUnknown.String() = %q, want CMD_UNKNOWN", CmdUnknown.String())
	}
}
