package features

import (
	"math"
	"testing"

	"github.com/Chopan22/ADS-B-Detection/internal/adsb"
)

func TestHaversineZeroOnIdenticalCoordinates(t *testing.T) {
	if d := Haversine(51.0, 4.0, 51.0, 4.0); d != 0 {
		t.Errorf("distance between identical points = %v, want 0", d)
	}
}

func TestHaversineSymmetric(t *testing.T) {
	d1 := Haversine(51.0, 4.0, 52.5, 5.2)
	d2 := Haversine(52.5, 5.2, 51.0, 4.0)
	if math.Abs(d1-d2) > 1e-6 {
		t.Errorf("haversine not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversineKnownDistance(t *testing.T) {
	// One degree of latitude is ~111.2 km on the reference sphere.
	d := Haversine(50.0, 4.0, 51.0, 4.0)
	want := EarthRadiusMeters * math.Pi / 180.0
	if math.Abs(d-want) > 1 {
		t.Errorf("one degree latitude = %v m, want ~%v m", d, want)
	}
}

func TestHeadingDeltaWraps(t *testing.T) {
	cases := []struct {
		h1, h2, want float64
	}{
		{0, 10, 10},
		{10, 0, -10},
		{350, 10, 20},
		{10, 350, -20},
		{0, 180, 180},
		{90, 271, -179},
	}
	for _, c := range cases {
		if got := HeadingDelta(c.h1, c.h2); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("HeadingDelta(%v, %v) = %v, want %v", c.h1, c.h2, got, c.want)
		}
	}
}

func TestExtractDeltas(t *testing.T) {
	states := []adsb.State{
		{Time: 100, Lat: 51, Lon: 4, Velocity: 230, Heading: 90, VertRate: 0, BaroAltitude: 10000, TargetScore: 0},
		{Time: 102, Lat: 51.001, Lon: 4.002, Velocity: 233, Heading: 95, VertRate: 2, BaroAltitude: 10010, TargetScore: 0.5},
	}

	vectors := Extract(states)
	if len(vectors) != 1 {
		t.Fatalf("extracted %d vectors, want 1", len(vectors))
	}
	v := vectors[0]
	if v.Dt != 2 {
		t.Errorf("Dt = %v, want 2", v.Dt)
	}
	if v.DSpeed != 3 {
		t.Errorf("DSpeed = %v, want 3", v.DSpeed)
	}
	if v.DHeading != 5 {
		t.Errorf("DHeading = %v, want 5", v.DHeading)
	}
	if v.DVertRate != 2 {
		t.Errorf("DVertRate = %v, want 2", v.DVertRate)
	}
	if v.DAltitude != 10 {
		t.Errorf("DAltitude = %v, want 10", v.DAltitude)
	}
	if v.Acceleration != 1.5 {
		t.Errorf("Acceleration = %v, want 1.5", v.Acceleration)
	}
	if v.GroundDistance <= 0 {
		t.Errorf("GroundDistance = %v, want > 0", v.GroundDistance)
	}
	if v.TargetScore != 0.5 {
		t.Errorf("TargetScore = %v, want 0.5", v.TargetScore)
	}
}

func TestExtractDropsNonPositiveDt(t *testing.T) {
	states := []adsb.State{
		{Time: 100, Lat: 51, Lon: 4},
		{Time: 100, Lat: 51, Lon: 4}, // duplicate timestamp
		{Time: 99, Lat: 51, Lon: 4},  // clock going backwards
		{Time: 105, Lat: 51, Lon: 4},
	}
	vectors := Extract(states)
	if len(vectors) != 1 {
		t.Fatalf("extracted %d vectors, want 1", len(vectors))
	}
	if vectors[0].Dt != 6 {
		t.Errorf("Dt = %v, want 6", vectors[0].Dt)
	}
}

func TestExtractNeedsTwoStates(t *testing.T) {
	if got := Extract(nil); got != nil {
		t.Errorf("Extract(nil) = %v, want nil", got)
	}
	if got := Extract([]adsb.State{{Time: 1}}); got != nil {
		t.Errorf("Extract(single) = %v, want nil", got)
	}
}
