package geofence

import "testing"

func square() Polygon {
	return Polygon{
		Vertices: []Vertex{
			{Lat: 0, Lon: 0},
			{Lat: 0, Lon: 1},
			{Lat: 1, Lon: 1},
			{Lat: 1, Lon: 0},
		},
		FloorAMSL:    0,
		CeilingAMSL:  500,
		IsConfigured: true,
	}
}

func TestNoneIsNeverValid(t *testing.T) {
	n := None{}
	if n.Valid() {
		t.Error("None.Valid() = true, want false")
	}
	if !n.Contains(0, 0, 0) {
		t.Error("None.Contains should always be true")
	}
}

func TestPolygonValidRequiresThreeVertices(t *testing.T) {
	p := Polygon{IsConfigured: true, Vertices: []Vertex{{0, 0}, {1, 1}}}
	if p.Valid() {
		t.Error("Polygon with 2 vertices should be invalid")
	}
}

func TestPolygonContainsInsidePoint(t *testing.T) {
	p := square()
	if !p.Contains(0.5, 0.5, 100) {
		t.Error("center of square should be contained")
	}
}

func TestPolygonContainsOutsidePoint(t *testing.T) {
	p := square()
	if p.Contains(2, 2, 100) {
		t.Error("point far outside square should not be contained")
	}
}

func TestPolygonContainsRespectsAltitudeFloor(t *testing.T) {
	p := square()
	p.FloorAMSL = 50
	if p.Contains(0.5, 0.5, 10) {
		t.Error("point below floor should not be contained")
	}
}

func TestPolygonContainsRespectsAltitudeCeiling(t *testing.T) {
	p := square()
	if p.Contains(0.5, 0.5, 1000) {
		t.Error("point above ceiling should not be contained")
	}
}

func TestPolygonRequiresHome(t *testing.T) {
	p := square()
	p.NeedsHome = true
	if !p.RequiresHome() {
		t.Error("RequiresHome() = false, want true")
	}
}
