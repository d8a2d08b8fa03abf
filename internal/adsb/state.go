// Package adsb parses raw ADS-B surveillance records from CSV exports.
package adsb

// State is one decoded ADS-B report for a single aircraft at a point in time.
// Numeric fields that were empty in the source parse as NaN; timestamps that
// were empty parse as -1.
type State struct {
	Time          int64
	LastPosUpdate int64
	LastContact   int64

	Icao24   string
	Squawk   string
	Callsign string

	Lat          float64
	Lon          float64
	BaroAltitude float64
	GeoAltitude  float64

	Velocity float64
	Heading  float64
	VertRate float64

	OnGround bool
	Alert    bool
	Spi      bool

	// TargetScore carries a ground-truth anomaly label when the source is a
	// synthetic or pre-labeled dataset; NaN otherwise.
	TargetScore float64
}
