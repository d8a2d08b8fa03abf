// gen-adsb writes a synthetic ADS-B CSV dataset with injected anomaly
// scenarios for exercising the training pipeline end to end.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/Chopan22/ADS-B-Detection/internal/synth"
)

var (
	out     = flag.String("out", "generated_data.csv", "Output CSV path")
	samples = flag.Int("samples", synth.DefaultSamples, "Number of reports to generate")
	seed    = flag.Int64("seed", 1337, "RNG seed for flight jitter")
)

func main() {
	flag.Parse()

	f, err := os.Create(*out)
	if err != nil {
		log.Fatalf("creating %s: %v", *out, err)
	}
	defer f.Close()

	if err := synth.WriteCSV(f, *samples, *seed); err != nil {
		log.Fatalf("generating dataset: %v", err)
	}
	log.Printf("wrote %d samples to %s", *samples, *out)
}
