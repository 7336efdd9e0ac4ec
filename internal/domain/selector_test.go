package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seriesFromDays builds a TimeSeries from (date, value) pairs given as
// YYYYMMDD strings, without the normalizer floor getting in the way.
func seriesFromDays(t *testing.T, pairs map[string]float64) TimeSeries {
	t.Helper()
	obs := make([]RawObservation, 0, len(pairs))
	for d, v := range pairs {
		obs = append(obs, RawObservation{Date: d, Value: v})
	}
	series, err := NormalizeSeries(VarTemperature, obs, MissingSentinel, 1)
	require.NoError(t, err)
	return series
}

func TestSelectDayOfYear(t *testing.T) {
	t.Run("window zero takes the exact day only", func(t *testing.T) {
		pairs := map[string]float64{}
		for y := 2000; y < 2012; y++ {
			pairs[fmt.Sprintf("%d0715", y)] = float64(y - 2000)
			pairs[fmt.Sprintf("%d0716", y)] = 99 // neighbor day, must be ignored
		}
		series := seriesFromDays(t, pairs)

		samples, err := SelectDayOfYear(series, time.July, 15, 0, 10)

		require.NoError(t, err)
		require.Len(t, samples, 12)
		for i, s := range samples {
			assert.Equal(t, 2000+i, s.Year)
			assert.Equal(t, float64(i), s.Value)
		}
	})

	t.Run("years without the day are omitted, not zero-filled", func(t *testing.T) {
		pairs := map[string]float64{}
		for y := 2000; y < 2012; y++ {
			if y == 2005 {
				continue
			}
			pairs[fmt.Sprintf("%d0715", y)] = 1
		}
		series := seriesFromDays(t, pairs)

		samples, err := SelectDayOfYear(series, time.July, 15, 0, 10)

		require.NoError(t, err)
		assert.Len(t, samples, 11)
		for _, s := range samples {
			assert.NotEqual(t, 2005, s.Year)
		}
	})

	t.Run("multiple in-window values are averaged", func(t *testing.T) {
		pairs := map[string]float64{}
		for y := 2000; y < 2010; y++ {
			pairs[fmt.Sprintf("%d0714", y)] = 10
			pairs[fmt.Sprintf("%d0715", y)] = 20
			pairs[fmt.Sprintf("%d0716", y)] = 30
		}
		series := seriesFromDays(t, pairs)

		samples, err := SelectDayOfYear(series, time.July, 15, 1, 10)

		require.NoError(t, err)
		require.Len(t, samples, 10)
		for _, s := range samples {
			assert.InDelta(t, 20, s.Value, 1e-12)
		}
	})

	t.Run("window wraps the year boundary", func(t *testing.T) {
		// Target Jan 1 with window 3: Dec 29-31 observations belong to the
		// following year's sample, Jan 1-4 to their own year's.
		pairs := map[string]float64{}
		for y := 2000; y <= 2011; y++ {
			pairs[fmt.Sprintf("%d1230", y-1)] = 5 // 2 days before Jan 1 of year y
			pairs[fmt.Sprintf("%d0103", y)] = 7   // 2 days after
		}
		series := seriesFromDays(t, pairs)

		samples, err := SelectDayOfYear(series, time.January, 1, 3, 10)

		require.NoError(t, err)
		require.Len(t, samples, 12)
		for _, s := range samples {
			assert.InDelta(t, 6, s.Value, 1e-12, "year %d should average the Dec and Jan edges", s.Year)
		}
	})

	t.Run("too few years", func(t *testing.T) {
		pairs := map[string]float64{}
		for y := 2000; y < 2005; y++ {
			pairs[fmt.Sprintf("%d0715", y)] = 1
		}
		series := seriesFromDays(t, pairs)

		_, err := SelectDayOfYear(series, time.July, 15, 0, 10)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInsufficientData)
		assert.Contains(t, err.Error(), "5 years")
	})

	t.Run("invalid calendar day", func(t *testing.T) {
		series := seriesFromDays(t, map[string]float64{"20200101": 1})

		_, err := SelectDayOfYear(series, time.April, 31, 0, 1)
		require.Error(t, err)

		_, err = SelectDayOfYear(series, time.January, 1, -1, 1)
		require.Error(t, err)
	})

	t.Run("feb 29 is a valid target", func(t *testing.T) {
		pairs := map[string]float64{}
		for y := 2000; y < 2024; y += 4 {
			pairs[fmt.Sprintf("%d0229", y)] = 1 // leap years only
		}
		series := seriesFromDays(t, pairs)

		samples, err := SelectDayOfYear(series, time.February, 29, 0, 5)
		require.NoError(t, err)
		assert.Len(t, samples, 6)
	})

	t.Run("feb 29 excludes non-leap years", func(t *testing.T) {
		// Feb 29 in a non-leap year would normalize to Mar 1; those years
		// must be omitted, not sampled at Mar 1.
		pairs := map[string]float64{}
		for y := 2000; y < 2024; y++ {
			if y%4 == 0 {
				pairs[fmt.Sprintf("%d0229", y)] = 1
			} else {
				pairs[fmt.Sprintf("%d0301", y)] = 99
			}
		}
		series := seriesFromDays(t, pairs)

		samples, err := SelectDayOfYear(series, time.February, 29, 0, 5)

		require.NoError(t, err)
		require.Len(t, samples, 6)
		for _, s := range samples {
			assert.Zero(t, s.Year%4, "non-leap year %d must not be sampled", s.Year)
			assert.Equal(t, 1.0, s.Value)
		}
	})
}

func TestNearestTarget(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		month    time.Month
		day      int
		wantYear int
		wantDist int
	}{
		{"exact hit", time.Date(2020, 7, 15, 0, 0, 0, 0, time.UTC), time.July, 15, 2020, 0},
		{"dec 30 near next jan 1", time.Date(2020, 12, 30, 0, 0, 0, 0, time.UTC), time.January, 1, 2021, 2},
		{"jan 2 near own jan 1", time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), time.January, 1, 2021, 1},
		{"jan 1 exact", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), time.January, 1, 2021, 0},
		{"early jan near previous dec 31", time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC), time.December, 31, 2020, 2},
		{"feb 29 skips non-leap neighbors", time.Date(2001, 3, 1, 0, 0, 0, 0, time.UTC), time.February, 29, 2000, 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			year, dist := nearestTarget(tt.date, tt.month, tt.day)
			assert.Equal(t, tt.wantYear, year)
			assert.Equal(t, tt.wantDist, dist)
		})
	}
}
