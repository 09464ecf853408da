package geo

import (
	"math"
	"testing"
)

func TestGreatCircleDistanceZero(t *testing.T) {
	d := GreatCircleDistance(37.7749, -122.4194, 37.7749, -122.4194)
	if d != 0 {
		t.Errorf("distance between identical points = %v, want 0", d)
	}
}

func TestGreatCircleDistanceKnownPair(t *testing.T) {
	// San Francisco to Los Angeles, approximately 559 km great-circle.
	d := GreatCircleDistance(37.7749, -122.4194, 34.0522, -118.2437)
	const want = 559000.0
	const tolerance = 5000.0
	if math.Abs(d-want) > tolerance {
		t.Errorf("SF-LA distance = %v m, want within %v of %v", d, tolerance, want)
	}
}

func TestGreatCircleDistanceAntipodal(t *testing.T) {
	d := GreatCircleDistance(0, 0, 0, 180)
	want := math.Pi * EarthRadiusMeters
	if math.Abs(d-want) > 1.0 {
		t.Errorf("antipodal distance = %v, want %v", d, want)
	}
}

func TestGreatCircleDistanceClampsFloatingPointNoise(t *testing.T) {
	// A degenerate near-duplicate pair shouldn't produce NaN from the square
	// root of a haversine term that has drifted slightly outside [0, 1].
	d := GreatCircleDistance(45.0, 45.0, 45.0+1e-15, 45.0)
	if !Finite(d) {
		t.Fatalf("distance is not finite: %v", d)
	}
}

func TestFinite(t *testing.T) {
	cases := []struct {
		v    float64
		want bool
	}{
		{1.0, true},
		{0.0, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, c := range cases {
		if got := Finite(c.v); got != c.want {
			t.Errorf("Finite(%v) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 45, 90, 180, -90, 360} {
		got := RadToDeg(DegToRad(deg))
		if math.Abs(got-deg) > 1e-9 {
			t.Errorf("round-trip %v degrees = %v", deg, got)
		}
	}
}
