// Package features derives per-timestep kinematic deltas from consecutive
// ADS-B states: the inputs the fuzzy anomaly scorer consumes.
package features

import (
	"math"

	"github.com/Chopan22/ADS-B-Detection/internal/adsb"
)

// EarthRadiusMeters is the sphere radius used for haversine ground distance.
const EarthRadiusMeters = 6371000.0

// Vector holds the deltas between two consecutive reports of one aircraft.
type Vector struct {
	Dt             float64
	DSpeed         float64
	DHeading       float64
	DVertRate      float64
	DAltitude      float64
	GroundDistance float64
	Acceleration   float64

	// TargetScore is the label carried from the newer of the two states.
	TargetScore float64
}

// Extract computes delta vectors over consecutive state pairs. Pairs with a
// non-positive time delta are dropped. Fewer than two states yield nothing.
func Extract(states []adsb.State) []Vector {
	if len(states) < 2 {
		return nil
	}

	vectors := make([]Vector, 0, len(states)-1)
	for i := 1; i < len(states); i++ {
		prev, curr := states[i-1], states[i]

		dt := float64(curr.Time - prev.Time)
		if dt <= 0 {
			continue
		}

		v := Vector{
			Dt:             dt,
			DSpeed:         curr.Velocity - prev.Velocity,
			DHeading:       HeadingDelta(prev.Heading, curr.Heading),
			DVertRate:      curr.VertRate - prev.VertRate,
			DAltitude:      curr.BaroAltitude - prev.BaroAltitude,
			GroundDistance: Haversine(prev.Lat, prev.Lon, curr.Lat, curr.Lon),
			TargetScore:    curr.TargetScore,
		}
		v.Acceleration = v.DSpeed / dt
		vectors = append(vectors, v)
	}
	return vectors
}

// HeadingDelta wraps the difference h2-h1 into (-180, 180].
func HeadingDelta(h1, h2 float64) float64 {
	delta := h2 - h1
	for delta > 180 {
		delta -= 360
	}
	for delta <= -180 {
		delta += 360
	}
	return delta
}

// Haversine returns the great-circle ground distance in meters between two
// lat/lon positions in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := deg2rad(lat1)
	phi2 := deg2rad(lat2)
	dphi := deg2rad(lat2 - lat1)
	dlambda := deg2rad(lon2 - lon1)

	a := math.Sin(dphi/2)*math.Sin(dphi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dlambda/2)*math.Sin(dlambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

func deg2rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
