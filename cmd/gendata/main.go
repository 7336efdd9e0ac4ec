// Command gendata writes a synthetic daily-series fixture shaped like the
// NASA POWER daily point payload: a linear trend plus a seasonal cycle plus
// seeded Gaussian noise, with a configurable fraction of missing-sentinel
// days. It uses the actual domain types so the fixture matches real fetch
// adapter output.
//
// Usage:
//
//	go run ./cmd/gendata \
//	  -out testdata/series_t2m.json \
//	  -start-year 1991 -years 30 \
//	  -base 10 -slope 0.5 -amplitude 8 -sigma 1 -seed 42
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/atmosight/climate-insight-service/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the series JSON fixture")
	startYear := flag.Int("start-year", 1991, "first year of the series")
	years := flag.Int("years", 30, "number of years to generate")
	base := flag.Float64("base", 10, "series mean at the start year")
	slope := flag.Float64("slope", 0.5, "linear trend per year")
	amplitude := flag.Float64("amplitude", 8, "seasonal cycle amplitude")
	sigma := flag.Float64("sigma", 1, "noise standard deviation")
	missing := flag.Float64("missing", 0.01, "fraction of days emitted as the missing sentinel")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))

	var obs []domain.RawObservation
	for y := *startYear; y < *startYear+*years; y++ {
		for d := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == y; d = d.AddDate(0, 0, 1) {
			value := *base +
				*slope*float64(y-*startYear) +
				*amplitude*math.Sin(2*math.Pi*float64(d.YearDay())/365.25) +
				rng.NormFloat64()**sigma
			if rng.Float64() < *missing {
				value = domain.MissingSentinel
			}
			obs = append(obs, domain.RawObservation{
				Date:  d.Format("20060102"),
				Value: value,
			})
		}
	}

	data, err := json.MarshalIndent(obs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	log.Printf("wrote %d observations (%d years) to %s", len(obs), *years, *out)
	return nil
}
