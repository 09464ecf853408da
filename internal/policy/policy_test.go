package policy

import (
	"testing"

	"github.com/PossumXI/Asgard/Heimdall/internal/config"
	"github.com/PossumXI/Asgard/Heimdall/internal/events"
)

func TestArbitrateNoneAlwaysPasses(t *testing.T) {
	sink := &events.MemorySink{}
	if !Arbitrate(config.PolicyNone, false, false, sink, "c1") {
		t.Error("PolicyNone should always pass")
	}
}

func TestArbitrateRequireTakeoff(t *testing.T) {
	sink := &events.MemorySink{}
	if Arbitrate(config.PolicyRequireTakeoff, false, true, sink, "c1") {
		t.Error("expected failure: takeoff required but absent")
	}
	if !sink.HasID(events.IDTakeoffRequired) {
		t.Error("expected TakeoffRequired event")
	}

	sink = &events.MemorySink{}
	if !Arbitrate(config.PolicyRequireTakeoff, true, false, sink, "c1") {
		t.Error("expected pass: takeoff present")
	}
}

func TestArbitrateRequireLanding(t *testing.T) {
	sink := &events.MemorySink{}
	if Arbitrate(config.PolicyRequireLanding, true, false, sink, "c1") {
		t.Error("expected failure: landing required but absent")
	}
	if !sink.HasID(events.IDLandingRequired) {
		t.Error("expected LandingRequired event")
	}
}

func TestArbitrateRequireBoth(t *testing.T) {
	cases := []struct {
		takeoff, landing, want bool
	}{
		{true, true, true},
		{true, false, false},
		{false, true, false},
		{false, false, false},
	}
	for _, c := range cases {
		sink := &events.MemorySink{}
		got := Arbitrate(config.PolicyRequireBoth, c.takeoff, c.landing, sink, "c1")
		if got != c.want {
			t.Errorf("Arbitrate(Both, %v, %v) = %v, want %v", c.takeoff, c.landing, got, c.want)
		}
		if !got && !sink.HasID(events.IDTakeoffOrLandingMissing) {
			t.Error("expected TakeoffOrLandingMissing event on failure")
		}
	}
}

func TestArbitrateRequireParity(t *testing.T) {
	sink := &events.MemorySink{}
	if !Arbitrate(config.PolicyRequireParity, true, true, sink, "c1") {
		t.Error("expected pass: both present")
	}
	sink = &events.MemorySink{}
	if !Arbitrate(config.PolicyRequireParity, false, false, sink, "c1") {
		t.Error("expected pass: neither present")
	}

	sink = &events.MemorySink{}
	if Arbitrate(config.PolicyRequireParity, true, false, sink, "c1") {
		t.Error("expected failure: takeoff without landing")
	}
	if !sink.HasID(events.IDAddLandingOrRemoveTakeoff) {
		t.Error("expected AddLandingOrRemoveTakeoff event")
	}

	sink = &events.MemorySink{}
	if Arbitrate(config.PolicyRequireParity, false, true, sink, "c1") {
		t.Error("expected failure: landing without takeoff")
	}
	if !sink.HasID(events.IDAddTakeoffOrRemoveLanding) {
		t.Error("expected AddTakeoffOrRemoveLanding event")
	}
}

func TestArbitrateUnknownPolicyPasses(t *testing.T) {
	sink := &events.MemorySink{}
	if !Arbitrate(config.RequiredPolicy(99), false, false, sink, "c1") {
		t.Error("an unrecognized policy value should always pass")
	}
}
