// Package preprocess turns raw feature vectors into the labeled, domain-
// clamped samples the GA trains on: clamp to variable ranges, drop residual
// outliers, label with the expert rule ladder, and split train/validation.
package preprocess

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Chopan22/ADS-B-Detection/internal/adsb"
	"github.com/Chopan22/ADS-B-Detection/internal/features"
	"github.com/Chopan22/ADS-B-Detection/internal/fuzzy"
	"github.com/Chopan22/ADS-B-Detection/internal/monitoring"
)

// Config holds the clamp ranges and filter thresholds. Ranges mirror the
// fuzzy variable domains; samples are pre-clamped so the FIS never sees
// out-of-domain values.
type Config struct {
	MaxTimeGap float64

	SpeedChangeRange    float64
	HeadingChangeRange  float64
	VertRateChangeRange float64
	AltitudeChangeRange float64
	TimeGapMax          float64
}

// DefaultConfig matches the fuzzy variable domains.
func DefaultConfig() Config {
	return Config{
		MaxTimeGap:          60.0,
		SpeedChangeRange:    10.0,
		HeadingChangeRange:  180.0,
		VertRateChangeRange: 20.0,
		AltitudeChangeRange: 1000.0,
		TimeGapMax:          60.0,
	}
}

// Sample is one labeled training row: the five FIS inputs plus the expert
// target score.
type Sample struct {
	Inputs        map[string]float64
	Target        float64
	OriginalIndex int
}

// Preprocessor runs the clamp/filter/label pipeline.
type Preprocessor struct {
	cfg Config
}

// New creates a Preprocessor; a zero Config is replaced by DefaultConfig.
func New(cfg Config) *Preprocessor {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Preprocessor{cfg: cfg}
}

// Process loads states from a CSV file and returns labeled samples.
func (p *Preprocessor) Process(path string) ([]Sample, error) {
	states, err := adsb.Load(path)
	if err != nil {
		return nil, err
	}
	monitoring.Logf("preprocess: loaded %d ADS-B states from %s", len(states), path)
	return p.ProcessStates(states)
}

// ProcessStates runs the pipeline on already-parsed states.
func (p *Preprocessor) ProcessStates(states []adsb.State) ([]Sample, error) {
	vectors := features.Extract(states)
	monitoring.Logf("preprocess: extracted %d feature vectors", len(vectors))

	samples := p.toSamples(vectors)
	filtered := p.filterOutliers(samples)
	monitoring.Logf("preprocess: retained %d of %d samples after filtering", len(filtered), len(samples))

	for i := range filtered {
		filtered[i].Target = ExpertLabel(filtered[i].Inputs)
	}

	if len(filtered) == 0 {
		return nil, fmt.Errorf("no usable samples after preprocessing")
	}
	logStatistics(filtered)
	return filtered, nil
}

// toSamples clamps each feature vector into the fuzzy variable domains.
func (p *Preprocessor) toSamples(vectors []features.Vector) []Sample {
	samples := make([]Sample, 0, len(vectors))
	for i, v := range vectors {
		samples = append(samples, Sample{
			OriginalIndex: i,
			Inputs: map[string]float64{
				fuzzy.VarSpeedChange:        clamp(v.DSpeed, -p.cfg.SpeedChangeRange, p.cfg.SpeedChangeRange),
				fuzzy.VarHeadingChange:      clamp(v.DHeading, -p.cfg.HeadingChangeRange, p.cfg.HeadingChangeRange),
				fuzzy.VarVerticalRateChange: clamp(v.DVertRate, -p.cfg.VertRateChangeRange, p.cfg.VertRateChangeRange),
				fuzzy.VarAltitudeChange:     clamp(v.DAltitude, -p.cfg.AltitudeChangeRange, p.cfg.AltitudeChangeRange),
				fuzzy.VarTimeGap:            clamp(v.Dt, 0, p.cfg.TimeGapMax),
			},
		})
	}
	return samples
}

// filterOutliers drops samples that still exceed the ranges after clamping
// (possible with a narrower configured range) or contain NaN/Inf.
func (p *Preprocessor) filterOutliers(samples []Sample) []Sample {
	filtered := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if math.Abs(s.Inputs[fuzzy.VarSpeedChange]) > p.cfg.SpeedChangeRange {
			continue
		}
		if math.Abs(s.Inputs[fuzzy.VarHeadingChange]) > p.cfg.HeadingChangeRange {
			continue
		}
		if math.Abs(s.Inputs[fuzzy.VarVerticalRateChange]) > p.cfg.VertRateChangeRange {
			continue
		}
		if math.Abs(s.Inputs[fuzzy.VarAltitudeChange]) > p.cfg.AltitudeChangeRange {
			continue
		}
		if s.Inputs[fuzzy.VarTimeGap] > p.cfg.MaxTimeGap {
			continue
		}

		ok := true
		for _, v := range s.Inputs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				ok = false
				break
			}
		}
		if ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// ExpertLabel scores one clamped feature row with the fixed rule ladder.
// Rules are ordered from most to least severe; the first match wins.
func ExpertLabel(inputs map[string]float64) float64 {
	speed := math.Abs(inputs[fuzzy.VarSpeedChange])
	heading := math.Abs(inputs[fuzzy.VarHeadingChange])
	vertRate := math.Abs(inputs[fuzzy.VarVerticalRateChange])
	altitude := math.Abs(inputs[fuzzy.VarAltitudeChange])
	timeGap := inputs[fuzzy.VarTimeGap]

	switch {
	// Extreme physics: at or beyond the modelled flight envelope.
	case speed > 8.0 || vertRate > 15.0 || altitude > 800.0:
		return 1.0
	// A >90 degree turn in a single update is impossible for a jet.
	case heading > 90.0:
		return 0.9
	// Aggressive compound maneuver.
	case speed > 5.0 && heading > 45.0:
		return 0.8
	// Performance edge: unlikely for commercial traffic but possible.
	case speed > 4.0 || vertRate > 8.0 || heading > 30.0:
		return 0.5
	// Coordinated turns and small deviations.
	case speed > 1.0 || heading > 10.0 || vertRate > 2.0:
		return 0.2
	// Large deltas are expected after a long reporting silence.
	case timeGap > 30.0:
		return 0.1
	default:
		return 0.0
	}
}

// Split shuffles samples with the given RNG and cuts them into train and
// validation sets at the given ratio. A nil RNG keeps the original order.
func Split(samples []Sample, trainRatio float64, rng *rand.Rand) (train, val []Sample, err error) {
	if trainRatio <= 0 || trainRatio >= 1 {
		return nil, nil, fmt.Errorf("train ratio must be in (0,1), got %g", trainRatio)
	}
	if len(samples) < 2 {
		return nil, nil, fmt.Errorf("need at least 2 samples to split, got %d", len(samples))
	}

	shuffled := append([]Sample{}, samples...)
	if rng != nil {
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
	}

	cut := int(float64(len(shuffled)) * trainRatio)
	if cut < 1 {
		cut = 1
	}
	if cut >= len(shuffled) {
		cut = len(shuffled) - 1
	}
	return shuffled[:cut], shuffled[cut:], nil
}

// Batch flattens samples into the parallel input/target slices the fitness
// evaluator consumes.
func Batch(samples []Sample) (inputs []map[string]float64, targets []float64) {
	inputs = make([]map[string]float64, len(samples))
	targets = make([]float64, len(samples))
	for i, s := range samples {
		inputs[i] = s.Inputs
		targets[i] = s.Target
	}
	return inputs, targets
}

// logStatistics reports the label distribution and per-feature ranges.
func logStatistics(samples []Sample) {
	var low, medium, high int
	for _, s := range samples {
		switch {
		case s.Target < 0.4:
			low++
		case s.Target < 0.7:
			medium++
		default:
			high++
		}
	}
	n := float64(len(samples))
	monitoring.Logf("preprocess: %d samples; anomaly distribution low=%d (%.1f%%) medium=%d (%.1f%%) high=%d (%.1f%%)",
		len(samples), low, 100*float64(low)/n, medium, 100*float64(medium)/n, high, 100*float64(high)/n)

	for _, name := range []string{
		fuzzy.VarSpeedChange, fuzzy.VarHeadingChange, fuzzy.VarVerticalRateChange,
		fuzzy.VarAltitudeChange, fuzzy.VarTimeGap,
	} {
		minV := math.Inf(1)
		maxV := math.Inf(-1)
		sum := 0.0
		for _, s := range samples {
			v := s.Inputs[name]
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
			sum += v
		}
		monitoring.Logf("preprocess: %s range [%.2f, %.2f] mean %.2f", name, minV, maxV, sum/n)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
