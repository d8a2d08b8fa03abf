package adsb

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/Chopan22/ADS-B-Detection/internal/monitoring"
)

// csv column order of the exported ADS-B schema.
const (
	colTime = iota
	colIcao24
	colLat
	colLon
	colVelocity
	colHeading
	colVertRate
	colCallsign
	colOnGround
	colAlert
	colSpi
	colSquawk
	colBaroAltitude
	colGeoAltitude
	colLastPosUpdate
	colLastContact
	colTargetScore
	numColumns
)

// Load reads an ADS-B CSV file. File-open failure is fatal; malformed rows
// are skipped and counted.
func Load(path string) ([]State, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening ADS-B CSV: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads header-prefixed ADS-B records from r. Records flagged on-ground,
// missing a position or missing icao24 are dropped; rows with fewer than 16
// fields are skipped (a missing trailing target_score is allowed, extra fields
// are ignored). The skip count is logged once at the end.
func Parse(r io.Reader) ([]State, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	// Header row.
	if _, err := reader.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	var states []State
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		s, ok := parseRecord(record)
		if !ok {
			skipped++
			continue
		}
		states = append(states, s)
	}

	if skipped > 0 {
		monitoring.Logf("adsb: skipped %d malformed or filtered rows", skipped)
	}
	return states, nil
}

// parseRecord decodes one CSV record. It returns false for rows that are
// structurally broken or filtered out (on-ground, no position).
func parseRecord(record []string) (State, bool) {
	if len(record) < numColumns-1 {
		return State{}, false
	}

	field := func(i int) string {
		if i < len(record) {
			return record[i]
		}
		return ""
	}

	s := State{
		Time:          parseEpoch(field(colTime)),
		Icao24:        field(colIcao24),
		Lat:           parseFloat(field(colLat)),
		Lon:           parseFloat(field(colLon)),
		Velocity:      parseFloat(field(colVelocity)),
		Heading:       parseFloat(field(colHeading)),
		VertRate:      parseFloat(field(colVertRate)),
		Callsign:      field(colCallsign),
		OnGround:      parseBool(field(colOnGround)),
		Alert:         parseBool(field(colAlert)),
		Spi:           parseBool(field(colSpi)),
		Squawk:        field(colSquawk),
		BaroAltitude:  parseFloat(field(colBaroAltitude)),
		GeoAltitude:   parseFloat(field(colGeoAltitude)),
		LastPosUpdate: parseEpoch(field(colLastPosUpdate)),
		LastContact:   parseEpoch(field(colLastContact)),
		TargetScore:   parseFloat(field(colTargetScore)),
	}

	if s.Icao24 == "" {
		return State{}, false
	}
	if s.OnGround {
		return State{}, false
	}
	if math.IsNaN(s.Lat) || math.IsNaN(s.Lon) {
		return State{}, false
	}
	return s, true
}

// parseFloat returns NaN for empty or unparseable numeric fields.
func parseFloat(s string) float64 {
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// parseEpoch returns -1 for empty or unparseable timestamps. Fractional
// epoch seconds truncate toward zero.
func parseEpoch(s string) int64 {
	if s == "" {
		return -1
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int64(f)
	}
	return -1
}

// parseBool reports true for "1", "true", "True" and "TRUE"; every other
// value, including "0" and "false" in any of those spellings, is false.
func parseBool(s string) bool {
	switch s {
	case "1", "true", "True", "TRUE":
		return true
	}
	return false
}
