package domain

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// TrendResult is an ordinary least-squares fit of value on calendar year.
// Immutable once computed.
type TrendResult struct {
	SampleFingerprint string `json:"sample_fingerprint"`

	// Slope is the change in the variable per year, in its native unit.
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`

	// RSquared is the coefficient of determination of the fit.
	RSquared float64 `json:"r_squared"`

	// Fitted holds the regression line evaluated at each sample year, in
	// year order, for plotting against the raw samples.
	Fitted []float64 `json:"fitted"`

	// ResidualStdErr is sqrt(SSR/(n−2)), zero when n == 2 (exact fit).
	ResidualStdErr float64 `json:"residual_std_err"`
}

// Direction classifies the slope sign for presentation.
func (t TrendResult) Direction() string {
	switch {
	case t.Slope > 0:
		return "increasing"
	case t.Slope < 0:
		return "decreasing"
	default:
		return "stable"
	}
}

// FitTrend regresses sample value on calendar year. The year, not the sample
// index, is the independent variable, so missing years do not distort the
// slope. SampleSets are canonically year-sorted, which makes the fit
// bit-for-bit reproducible regardless of the order the raw data arrived in.
//
// Fails with ErrDegenerateFit when fewer than two distinct years are present.
func FitTrend(samples SampleSet) (TrendResult, error) {
	if distinctYears(samples) < 2 {
		return TrendResult{}, fmt.Errorf("%w: regression needs at least 2 distinct years, have %d",
			ErrDegenerateFit, distinctYears(samples))
	}

	years := samples.Years()
	values := samples.Values()

	intercept, slope := stat.LinearRegression(years, values, nil, false)
	r2 := stat.RSquared(years, values, nil, intercept, slope)

	fitted := make([]float64, len(samples))
	var ssr float64
	for i, y := range years {
		fitted[i] = intercept + slope*y
		resid := values[i] - fitted[i]
		ssr += resid * resid
	}

	var residStdErr float64
	if n := len(samples); n > 2 {
		residStdErr = math.Sqrt(ssr / float64(n-2))
	}

	return TrendResult{
		SampleFingerprint: samples.Fingerprint(),
		Slope:             slope,
		Intercept:         intercept,
		RSquared:          r2,
		Fitted:            fitted,
		ResidualStdErr:    residStdErr,
	}, nil
}

func distinctYears(samples SampleSet) int {
	// Years are strictly increasing by construction, so every element is
	// distinct; the guard against hand-built sets stays cheap anyway.
	seen := make(map[int]struct{}, len(samples))
	for _, s := range samples {
		seen[s.Year] = struct{}{}
	}
	return len(seen)
}
