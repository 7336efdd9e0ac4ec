package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPipeline(t *testing.T, samples SampleSet) (TrendResult, ExtremeResult, DistributionResult) {
	t.Helper()
	trend, err := FitTrend(samples)
	require.NoError(t, err)
	dist, err := FitDistribution(samples, FamilyNormal)
	require.NoError(t, err)
	extreme, err := EstimateExtremes(samples, &dist)
	require.NoError(t, err)
	return trend, extreme, dist
}

func testSamples(valueFor func(year int) float64) SampleSet {
	samples := SampleSet{}
	for y := 2000; y < 2020; y++ {
		samples = append(samples, ClimatologicalSample{Year: y, Value: valueFor(y)})
	}
	return samples
}

func TestAggregate(t *testing.T) {
	query := Query{
		ID:       uuid.New(),
		Location: "Faisalabad",
		Lat:      31.42, Lon: 73.08,
		Variable: VarTemperature,
		Month:    time.July, Day: 15,
		StartYear: 1991, EndYear: 2026,
	}

	t.Run("packages matching results", func(t *testing.T) {
		frozen := time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
		SetClock(clockwork.NewFakeClockAt(frozen))
		defer SetClock(nil)

		samples := testSamples(func(y int) float64 { return 10 + 0.5*float64(y-2000) })
		trend, extreme, dist := buildPipeline(t, samples)

		result, err := Aggregate(query, samples, trend, extreme, dist)

		require.NoError(t, err)
		assert.Equal(t, query, result.Query)
		assert.Equal(t, samples, result.Samples)
		assert.Equal(t, "increasing", result.TrendDirection)
		assert.Equal(t, frozen, result.ComputedAt)
	})

	t.Run("record high and low carry their years", func(t *testing.T) {
		samples := testSamples(func(y int) float64 { return 10 + 0.5*float64(y-2000) })
		samples[3].Value = 40 // 2003 spike
		samples[7].Value = -5 // 2007 dip
		trend, extreme, dist := buildPipeline(t, samples)

		result, err := Aggregate(query, samples, trend, extreme, dist)

		require.NoError(t, err)
		assert.Equal(t, ClimatologicalSample{Year: 2003, Value: 40}, result.RecordHigh)
		assert.Equal(t, ClimatologicalSample{Year: 2007, Value: -5}, result.RecordLow)
	})

	t.Run("record ties resolve to the earliest year", func(t *testing.T) {
		samples := testSamples(func(y int) float64 { return float64(y % 4) })
		trend, extreme, dist := buildPipeline(t, samples)

		result, err := Aggregate(query, samples, trend, extreme, dist)

		require.NoError(t, err)
		assert.Equal(t, 2003, result.RecordHigh.Year)
		assert.Equal(t, 2000, result.RecordLow.Year)
	})

	t.Run("volatile flag follows empirical exceedance", func(t *testing.T) {
		samples := testSamples(func(y int) float64 { return 10 + 0.5*float64(y-2000) })
		trend, extreme, dist := buildPipeline(t, samples)

		result, err := Aggregate(query, samples, trend, extreme, dist)

		require.NoError(t, err)
		assert.Equal(t, extreme.EmpiricalExceedance > 0.15, result.Volatile)
	})

	t.Run("rejects results from a different sample set", func(t *testing.T) {
		samples := testSamples(func(y int) float64 { return 10 + 0.5*float64(y-2000) })
		other := testSamples(func(y int) float64 { return float64(y % 9) })

		_, extreme, dist := buildPipeline(t, samples)
		otherTrend, _, _ := buildPipeline(t, other)

		_, err := Aggregate(query, samples, otherTrend, extreme, dist)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInconsistentResult)
		assert.Contains(t, err.Error(), "trend")
	})
}

func TestSampleSetFingerprint(t *testing.T) {
	a := testSamples(func(y int) float64 { return float64(y) / 3 })
	b := testSamples(func(y int) float64 { return float64(y) / 3 })
	c := testSamples(func(y int) float64 { return float64(y) / 7 })

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
