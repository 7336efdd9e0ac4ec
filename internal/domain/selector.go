package domain

import (
	"fmt"
	"sort"
	"time"
)

// DefaultMinYears is the floor on sample-set size below which downstream
// statistics are considered meaningless.
const DefaultMinYears = 10

// SelectDayOfYear collects, for each year in the series, the value observed
// on the target calendar day, or the mean of the values observed within
// ±windowDays of it. The mean is the documented aggregation rule for
// multiple in-window values: it is deterministic and does not depend on
// which value happens to appear first.
//
// The window wraps calendar year boundaries: with a target of Jan 1 and a
// window of 3, a Dec 30 observation lies 2 days before the following year's
// target and counts toward that following year's sample. Years with no valid
// value inside the window are omitted, never zero-filled or interpolated.
//
// Fails with ErrInsufficientData when fewer than minYears years survive.
func SelectDayOfYear(series TimeSeries, month time.Month, day, windowDays, minYears int) (SampleSet, error) {
	if err := validateCalendarDay(month, day); err != nil {
		return nil, err
	}
	if windowDays < 0 {
		return nil, fmt.Errorf("window must be non-negative, got %d", windowDays)
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, rec := range series.Records {
		year, dist := nearestTarget(rec.Date, month, day)
		if dist <= windowDays {
			sums[year] += rec.Value
			counts[year]++
		}
	}

	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)

	samples := make(SampleSet, 0, len(years))
	for _, y := range years {
		samples = append(samples, ClimatologicalSample{Year: y, Value: sums[y] / float64(counts[y])})
	}

	if len(samples) < minYears {
		return nil, fmt.Errorf("%w: target day observed in %d years, need at least %d",
			ErrInsufficientData, len(samples), minYears)
	}
	return samples, nil
}

// nearestTarget finds the occurrence of the target calendar day closest to
// date, looking at the date's own year and both neighbors so that windows
// spanning Dec 31 → Jan 1 resolve correctly. Returns the year of that
// occurrence and the distance to it in whole days. Years in which the target
// does not exist (Feb 29 outside leap years) contribute no occurrence;
// time.Date would normalize such a target to Mar 1, which is not the target.
func nearestTarget(date time.Time, month time.Month, day int) (year, dist int) {
	bestYear, bestDist := 0, int(^uint(0)>>1)
	for _, y := range []int{date.Year() - 1, date.Year(), date.Year() + 1} {
		target := time.Date(y, month, day, 0, 0, 0, 0, time.UTC)
		if target.Month() != month || target.Day() != day {
			continue
		}
		d := int(date.Sub(target).Hours() / 24)
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			bestYear, bestDist = y, d
		}
	}
	return bestYear, bestDist
}

// validateCalendarDay rejects (month, day) pairs that time.Date would
// silently normalize into a different day, e.g. April 31. Feb 29 is accepted:
// it is checked against a leap year and resolves per-year during selection.
func validateCalendarDay(month time.Month, day int) error {
	if month < time.January || month > time.December || day < 1 {
		return fmt.Errorf("invalid calendar day %d-%d", int(month), day)
	}
	// 2000 is a leap year, so Feb 29 passes.
	probe := time.Date(2000, month, day, 0, 0, 0, 0, time.UTC)
	if probe.Month() != month || probe.Day() != day {
		return fmt.Errorf("invalid calendar day %d-%d", int(month), day)
	}
	return nil
}
