package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// volatileExceedance is the empirical exceedance fraction above which the
// target day is presented as historically volatile rather than stable.
const volatileExceedance = 0.15

// Query records the parameters an analysis was run for.
type Query struct {
	ID         uuid.UUID  `json:"id"`
	Location   string     `json:"location,omitempty"`
	Lat        float64    `json:"lat"`
	Lon        float64    `json:"lon"`
	Variable   Variable   `json:"variable"`
	Month      time.Month `json:"month"`
	Day        int        `json:"day"`
	WindowDays int        `json:"window_days"`
	StartYear  int        `json:"start_year"`
	EndYear    int        `json:"end_year"`
}

// AnalysisResult is the complete climatological profile for one query,
// composed from the pipeline stages. Immutable; the caller owns its lifetime
// and the core keeps no reference to it.
type AnalysisResult struct {
	Query        Query              `json:"query"`
	Samples      SampleSet          `json:"samples"`
	Trend        TrendResult        `json:"trend"`
	Extreme      ExtremeResult      `json:"extreme"`
	Distribution DistributionResult `json:"distribution"`

	// TrendDirection and Volatile are the headline classifications shown by
	// the presentation layer: "increasing", "decreasing" or "stable", and
	// whether extremes occurred in more than 15% of years.
	TrendDirection string `json:"trend_direction"`
	Volatile       bool   `json:"volatile"`

	// RecordHigh and RecordLow are the extreme samples on record, with the
	// year they occurred. Ties go to the earliest year.
	RecordHigh ClimatologicalSample `json:"record_high"`
	RecordLow  ClimatologicalSample `json:"record_low"`

	ComputedAt time.Time `json:"computed_at"`
}

// Aggregate packages the pipeline outputs into one AnalysisResult. It is pure
// composition: no statistics of its own beyond deriving the presentation
// classifications. Every derived input must originate from the supplied
// sample set; a fingerprint mismatch fails with ErrInconsistentResult and
// indicates a caller bug.
func Aggregate(query Query, samples SampleSet, trend TrendResult, extreme ExtremeResult, dist DistributionResult) (AnalysisResult, error) {
	fp := samples.Fingerprint()
	for _, in := range []struct {
		stage string
		fp    string
	}{
		{"trend", trend.SampleFingerprint},
		{"extreme", extreme.SampleFingerprint},
		{"distribution", dist.SampleFingerprint},
	} {
		if in.fp != fp {
			return AnalysisResult{}, fmt.Errorf("%w: %s result fitted from sample set %s, query %s has %s",
				ErrInconsistentResult, in.stage, in.fp, query.ID, fp)
		}
	}

	high, low := samples[0], samples[0]
	for _, s := range samples[1:] {
		if s.Value > high.Value {
			high = s
		}
		if s.Value < low.Value {
			low = s
		}
	}

	return AnalysisResult{
		Query:          query,
		Samples:        samples,
		Trend:          trend,
		Extreme:        extreme,
		Distribution:   dist,
		TrendDirection: trend.Direction(),
		Volatile:       extreme.EmpiricalExceedance > volatileExceedance,
		RecordHigh:     high,
		RecordLow:      low,
		ComputedAt:     clock.Now().UTC(),
	}, nil
}
