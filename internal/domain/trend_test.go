package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitTrend(t *testing.T) {
	t.Run("exact linear data", func(t *testing.T) {
		samples := SampleSet{}
		for y := 2000; y < 2015; y++ {
			samples = append(samples, ClimatologicalSample{Year: y, Value: 3 + 0.25*float64(y-2000)})
		}

		trend, err := FitTrend(samples)

		require.NoError(t, err)
		assert.InDelta(t, 0.25, trend.Slope, 1e-9)
		assert.InDelta(t, 1.0, trend.RSquared, 1e-9)
		assert.Equal(t, samples.Fingerprint(), trend.SampleFingerprint)
		require.Len(t, trend.Fitted, len(samples))
		for i, s := range samples {
			assert.InDelta(t, s.Value, trend.Fitted[i], 1e-9)
		}
		assert.InDelta(t, 0, trend.ResidualStdErr, 1e-9)
		assert.Equal(t, "increasing", trend.Direction())
	})

	t.Run("year is the axis, not the index", func(t *testing.T) {
		// A gap in the years must not distort the slope.
		samples := SampleSet{
			{Year: 2000, Value: 0},
			{Year: 2001, Value: 1},
			{Year: 2010, Value: 10},
			{Year: 2011, Value: 11},
		}

		trend, err := FitTrend(samples)

		require.NoError(t, err)
		assert.InDelta(t, 1.0, trend.Slope, 1e-9)
	})

	t.Run("recovers slope from noisy synthetic data", func(t *testing.T) {
		// 30 years of value = 10 + 0.5·(year−2000) + N(0, 1) at a fixed day.
		rng := rand.New(rand.NewSource(7))
		samples := SampleSet{}
		for y := 2000; y < 2030; y++ {
			samples = append(samples, ClimatologicalSample{
				Year:  y,
				Value: 10 + 0.5*float64(y-2000) + rng.NormFloat64(),
			})
		}

		trend, err := FitTrend(samples)

		require.NoError(t, err)
		assert.InDelta(t, 0.5, trend.Slope, 0.15)
		assert.Greater(t, trend.RSquared, 0.8)
		assert.Greater(t, trend.ResidualStdErr, 0.0)
	})

	t.Run("deterministic under input reordering", func(t *testing.T) {
		// The same raw days fed in a different order must produce a
		// bit-identical fit, because normalization and selection canonicalize
		// the ordering before the regression sees it.
		pairs := make([]RawObservation, 0, 24)
		for y := 2000; y < 2012; y++ {
			pairs = append(pairs,
				RawObservation{Date: fmt.Sprintf("%d0714", y), Value: 4 + 0.3*float64(y-2000)},
				RawObservation{Date: fmt.Sprintf("%d0716", y), Value: 6 + 0.3*float64(y-2000)},
			)
		}
		reversed := make([]RawObservation, len(pairs))
		for i, p := range pairs {
			reversed[len(pairs)-1-i] = p
		}

		fit := func(obs []RawObservation) TrendResult {
			series, err := NormalizeSeries(VarTemperature, obs, MissingSentinel, 1)
			require.NoError(t, err)
			samples, err := SelectDayOfYear(series, time.July, 15, 1, 10)
			require.NoError(t, err)
			trend, err := FitTrend(samples)
			require.NoError(t, err)
			return trend
		}

		a, b := fit(pairs), fit(reversed)
		assert.Equal(t, a.Slope, b.Slope)
		assert.Equal(t, a.Intercept, b.Intercept)
		assert.Equal(t, a.RSquared, b.RSquared)
		assert.Equal(t, a.SampleFingerprint, b.SampleFingerprint)
	})

	t.Run("fewer than two distinct years", func(t *testing.T) {
		for name, samples := range map[string]SampleSet{
			"empty":       {},
			"single year": {{Year: 2000, Value: 1}},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := FitTrend(samples)
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrDegenerateFit)
			})
		}
	})
}
