// adsb-tune trains the fuzzy ADS-B anomaly scorer: it loads a raw ADS-B CSV,
// extracts and labels per-timestep features, runs the genetic optimizer over
// the membership breakpoints and reports baseline vs optimized quality.
//
// Usage:
//
//	adsb-tune <csv_path> [--generations N] [--population N] [--train-split R]
//	          [--output FILE] [--seed N] [--elitist] [--parallel N]
//	          [--config FILE] [--db FILE] [--report-dir DIR]
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "adsb-tune: %v\n", err)
		os.Exit(1)
	}
}
