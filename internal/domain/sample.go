package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// ClimatologicalSample is one representative value for the target calendar
// day in one year.
type ClimatologicalSample struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// SampleSet is a year-sorted sequence of climatological samples, one per
// year. Built only by SelectDayOfYear; years are strictly increasing and the
// set is never empty.
type SampleSet []ClimatologicalSample

// Years returns the sample years as float64, for use as a regression axis.
func (s SampleSet) Years() []float64 {
	years := make([]float64, len(s))
	for i, sm := range s {
		years[i] = float64(sm.Year)
	}
	return years
}

// Values returns the sample values in year order.
func (s SampleSet) Values() []float64 {
	values := make([]float64, len(s))
	for i, sm := range s {
		values[i] = sm.Value
	}
	return values
}

// Fingerprint returns a deterministic SHA-256 digest of the sample set.
// Values are rendered with strconv's shortest round-trip formatting, so two
// sets fingerprint equal exactly when they are numerically identical.
// Derived results carry this digest and Aggregate compares them, which makes
// mixing results from different sample sets a detectable caller bug.
func (s SampleSet) Fingerprint() string {
	var b strings.Builder
	for _, sm := range s {
		b.WriteString(strconv.Itoa(sm.Year))
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(sm.Value, 'g', -1, 64))
		b.WriteByte('|')
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:8])
}
