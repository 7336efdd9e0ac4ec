package domain

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// MissingSentinel is the value NASA POWER reports for days with no
// observation. Normalization drops these rather than coercing them to zero.
const MissingSentinel = -999.0

// powerDateLayout is the YYYYMMDD date encoding used by the POWER API.
const powerDateLayout = "20060102"

// RawObservation is one (date, value) pair exactly as delivered by the data
// source, before any validation. Date is a YYYYMMDD string.
type RawObservation struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// RawRecord is a validated daily observation.
type RawRecord struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// TimeSeries is a date-sorted run of valid daily records for one variable at
// one location. Built only by NormalizeSeries; no duplicate dates, no
// sentinel or NaN values.
type TimeSeries struct {
	Variable Variable    `json:"variable"`
	Records  []RawRecord `json:"records"`
}

// NormalizeSeries validates raw observations into a TimeSeries. Records whose
// value equals the missing sentinel (or is NaN) are dropped; the remainder is
// sorted by date. An unparsable date, or a date reported twice with
// conflicting values, fails with ErrMalformedRecord. Fewer than minValid
// surviving records fails with ErrInsufficientData.
//
// The input slice is not mutated.
func NormalizeSeries(variable Variable, obs []RawObservation, sentinel float64, minValid int) (TimeSeries, error) {
	records := make([]RawRecord, 0, len(obs))
	for _, o := range obs {
		if o.Value == sentinel || math.IsNaN(o.Value) {
			continue
		}
		date, err := time.Parse(powerDateLayout, o.Date)
		if err != nil {
			return TimeSeries{}, fmt.Errorf("%w: unparsable date %q", ErrMalformedRecord, o.Date)
		}
		records = append(records, RawRecord{Date: date, Value: o.Value})
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })

	deduped := records[:0]
	for _, r := range records {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(r.Date) {
			if deduped[n-1].Value != r.Value {
				return TimeSeries{}, fmt.Errorf("%w: date %s reported with conflicting values %g and %g",
					ErrMalformedRecord, r.Date.Format("2006-01-02"), deduped[n-1].Value, r.Value)
			}
			continue
		}
		deduped = append(deduped, r)
	}

	if len(deduped) < minValid {
		return TimeSeries{}, fmt.Errorf("%w: %d valid records, need at least %d",
			ErrInsufficientData, len(deduped), minValid)
	}

	return TimeSeries{Variable: variable, Records: deduped}, nil
}
