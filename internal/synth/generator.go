// Package synth generates deterministic synthetic ADS-B datasets: a drifting
// nominal flight with injected anomaly scenarios, plus pre-labeled sample
// batches for exercising the GA without a CSV file.
package synth

import (
	"fmt"
	"io"
	"math"
	"math/rand"

	"github.com/Chopan22/ADS-B-Detection/internal/fuzzy"
	"github.com/Chopan22/ADS-B-Detection/internal/preprocess"
)

// DefaultSamples is roughly two hours of flight at a 2 s reporting interval.
const DefaultSamples = 3600

// flightState is the simulated aircraft truth.
type flightState struct {
	time int64
	lat  float64
	lon  float64
	vel  float64
	head float64
	vr   float64
	alt  float64
}

// WriteCSV writes a synthetic dataset in the raw ADS-B CSV schema. The flight
// drifts gently; five scenarios are injected at fixed indices: a position
// teleport (score 1.0), a hard vertical maneuver (0.5), a reporting gap with
// an impossible climb (1.0), a gap with an aggressive acceleration (0.5) and
// a kinematic freeze where velocity says moving but the position does not
// (1.0).
func WriteCSV(w io.Writer, samples int, seed int64) error {
	if samples <= 0 {
		samples = DefaultSamples
	}
	rng := rand.New(rand.NewSource(seed))
	jitter := func() float64 { return -0.02 + 0.04*rng.Float64() }

	if _, err := fmt.Fprintln(w, "time,icao24,lat,lon,velocity,heading,vertrate,callsign,onground,alert,spi,squawk,baroaltitude,geoaltitude,lastposupdate,lastcontact,target_score"); err != nil {
		return err
	}

	p := flightState{time: 1654495200, lat: 51.0, lon: 4.0, vel: 230.0, head: 90.0, vr: 0.0, alt: 10000.0}

	for i := 0; i < samples; i++ {
		score := 0.0
		var dt int64 = 2

		p.vel += jitter()
		p.vr += jitter()
		p.head += jitter() * 0.5

		oLat, oLon, oVel, oAlt, oVR := p.lat, p.lon, p.vel, p.alt, p.vr
		frozen := i >= 2500 && i <= 2505

		switch {
		case i == 500:
			// Impossible position jump over two seconds.
			oLat += 0.1
			score = 1.0
		case i == 1000:
			// ~7000 fpm vertical rate: fighter-jet territory.
			oVR = 35.0
			score = 0.5
		case i == 1500:
			dt = 60
			oAlt += 15000.0
			score = 1.0
		case i == 2000:
			dt = 60
			oVel += 40.0
			score = 0.5
		case frozen:
			// Velocity reports motion while the position stays frozen.
			oVel = 230.0
			score = 1.0
		}

		if _, err := fmt.Fprintf(w, "%d,4ca765,%.8f,%.8f,%.2f,%.2f,%.2f,TEST123,False,False,False,0100,%.2f,%.2f,%d,%d,%.2f\n",
			p.time, oLat, oLon, oVel, p.head, oVR, oAlt, oAlt+50, p.time-1, p.time, score); err != nil {
			return err
		}

		p.alt += p.vr * float64(dt)
		r := p.head * math.Pi / 180.0
		if !frozen {
			p.lat += p.vel * float64(dt) * math.Cos(r) * 0.000009
			p.lon += p.vel * float64(dt) * math.Sin(r) * 0.000015
		}
		p.time += dt
	}
	return nil
}

// ScenarioSamples returns n pre-labeled samples cycling through five flight
// regimes: nominal, moderate anomaly, high anomaly, large-gap and mixed. It
// is the fixture batch for exercising fitness and GA convergence.
func ScenarioSamples(n int, rng *rand.Rand) []preprocess.Sample {
	uniform := func(lo, hi float64) float64 { return lo + (hi-lo)*rng.Float64() }

	samples := make([]preprocess.Sample, 0, n)
	for i := 0; i < n; i++ {
		var inputs map[string]float64
		var target float64

		switch i % 5 {
		case 0: // nominal flight
			inputs = map[string]float64{
				fuzzy.VarSpeedChange:        uniform(-1, 1),
				fuzzy.VarHeadingChange:      uniform(-5, 5),
				fuzzy.VarVerticalRateChange: uniform(-1, 1),
				fuzzy.VarAltitudeChange:     uniform(-50, 50),
				fuzzy.VarTimeGap:            uniform(1, 5),
			}
			target = 0.2
		case 1: // moderate anomaly
			inputs = map[string]float64{
				fuzzy.VarSpeedChange:        uniform(2, 4),
				fuzzy.VarHeadingChange:      uniform(10, 30),
				fuzzy.VarVerticalRateChange: uniform(2, 4),
				fuzzy.VarAltitudeChange:     uniform(100, 300),
				fuzzy.VarTimeGap:            uniform(3, 10),
			}
			target = 0.5
		case 2: // high anomaly
			inputs = map[string]float64{
				fuzzy.VarSpeedChange:        uniform(5, 8),
				fuzzy.VarHeadingChange:      uniform(50, 120),
				fuzzy.VarVerticalRateChange: uniform(-15, -8),
				fuzzy.VarAltitudeChange:     uniform(300, 700),
				fuzzy.VarTimeGap:            uniform(1, 3),
			}
			target = 0.8
		case 3: // large reporting gap damps the anomaly
			inputs = map[string]float64{
				fuzzy.VarSpeedChange:        uniform(3, 5),
				fuzzy.VarHeadingChange:      uniform(15, 40),
				fuzzy.VarVerticalRateChange: uniform(1, 3),
				fuzzy.VarAltitudeChange:     uniform(50, 150),
				fuzzy.VarTimeGap:            uniform(20, 50),
			}
			target = 0.3
		default: // mixed
			inputs = map[string]float64{
				fuzzy.VarSpeedChange:        uniform(-3, 3),
				fuzzy.VarHeadingChange:      uniform(-20, 20),
				fuzzy.VarVerticalRateChange: uniform(-5, 5),
				fuzzy.VarAltitudeChange:     uniform(-200, 200),
				fuzzy.VarTimeGap:            uniform(5, 15),
			}
			target = 0.4
		}

		samples = append(samples, preprocess.Sample{Inputs: inputs, Target: target, OriginalIndex: i})
	}
	return samples
}
