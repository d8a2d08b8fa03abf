package synth

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/Chopan22/ADS-B-Detection/internal/adsb"
	"github.com/Chopan22/ADS-B-Detection/internal/fuzzy"
	"github.com/Chopan22/ADS-B-Detection/internal/monitoring"
)

func init() {
	monitoring.SetLogger(nil)
}

func TestWriteCSVRowCountAndHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, 100, 1); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 101 {
		t.Fatalf("got %d lines, want 101 (header + 100 rows)", len(lines))
	}
	if !strings.HasPrefix(lines[0], "time,icao24,lat,lon,velocity") {
		t.Errorf("unexpected header: %s", lines[0])
	}
}

func TestWriteCSVDeterministicForSeed(t *testing.T) {
	var a, b bytes.Buffer
	if err := WriteCSV(&a, 200, 1337); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if err := WriteCSV(&b, 200, 1337); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if a.String() != b.String() {
		t.Error("same seed produced different datasets")
	}

	var c bytes.Buffer
	if err := WriteCSV(&c, 200, 7); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if a.String() == c.String() {
		t.Error("different seeds produced identical datasets")
	}
}

func TestWriteCSVParsesBackCleanly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, 600, 1); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	states, err := adsb.Parse(&buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(states) != 600 {
		t.Fatalf("parsed %d states, want 600", len(states))
	}

	// The teleport scenario at index 500 carries a full anomaly label.
	if states[500].TargetScore != 1.0 {
		t.Errorf("teleport sample score = %v, want 1.0", states[500].TargetScore)
	}
	if states[499].TargetScore != 0.0 {
		t.Errorf("pre-teleport sample score = %v, want 0.0", states[499].TargetScore)
	}
}

func TestScenarioSamplesCycle(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	samples := ScenarioSamples(10, rng)
	if len(samples) != 10 {
		t.Fatalf("got %d samples, want 10", len(samples))
	}

	wantTargets := []float64{0.2, 0.5, 0.8, 0.3, 0.4}
	for i, s := range samples {
		if s.Target != wantTargets[i%5] {
			t.Errorf("sample %d target = %v, want %v", i, s.Target, wantTargets[i%5])
		}
		for _, name := range []string{
			fuzzy.VarSpeedChange, fuzzy.VarHeadingChange, fuzzy.VarVerticalRateChange,
			fuzzy.VarAltitudeChange, fuzzy.VarTimeGap,
		} {
			if _, ok := s.Inputs[name]; !ok {
				t.Errorf("sample %d missing input %s", i, name)
			}
		}
	}

	// The nominal regime stays inside the quiet envelope.
	nominal := samples[0].Inputs
	if v := nominal[fuzzy.VarSpeedChange]; v < -1 || v > 1 {
		t.Errorf("nominal SpeedChange = %v, want within [-1, 1]", v)
	}
	if v := nominal[fuzzy.VarTimeGap]; v < 1 || v > 5 {
		t.Errorf("nominal TimeGap = %v, want within [1, 5]", v)
	}
}
