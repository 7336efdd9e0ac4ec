package domain

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Family identifies a parametric distribution family.
type Family string

const (
	FamilyNormal    Family = "normal"
	FamilyLogNormal Family = "log-normal"
)

// ParseFamily parses a family name, case-insensitively.
func ParseFamily(s string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "gaussian":
		return FamilyNormal, nil
	case "log-normal", "lognormal":
		return FamilyLogNormal, nil
	}
	return "", fmt.Errorf("unknown distribution family %q", s)
}

// percentileLevels are the fixed quantiles reported for every fit.
var percentileLevels = []int{10, 25, 50, 75, 90}

// Percentile is one entry of the percentile table.
type Percentile struct {
	Level int     `json:"level"` // e.g. 10 for p10
	Value float64 `json:"value"`
}

// DistributionResult is a fitted parametric distribution with its percentile
// table. Immutable once computed.
type DistributionResult struct {
	SampleFingerprint string `json:"sample_fingerprint"`

	Family Family `json:"family"`

	// Mu and Sigma are the location and scale parameters; for the log-normal
	// they apply on the log scale.
	Mu    float64 `json:"mu"`
	Sigma float64 `json:"sigma"`

	Percentiles []Percentile `json:"percentiles"`
}

// Survival returns P(X ≥ x) under the fitted distribution.
func (d DistributionResult) Survival(x float64) float64 {
	return d.dist().Survival(x)
}

// Quantile returns the value at probability p under the fitted distribution.
func (d DistributionResult) Quantile(p float64) float64 {
	return d.dist().Quantile(p)
}

type quantiler interface {
	Survival(float64) float64
	Quantile(float64) float64
}

func (d DistributionResult) dist() quantiler {
	if d.Family == FamilyLogNormal {
		return distuv.LogNormal{Mu: d.Mu, Sigma: d.Sigma}
	}
	return distuv.Normal{Mu: d.Mu, Sigma: d.Sigma}
}

// FitDistribution fits the chosen family to the sample set by the method of
// moments: the normal takes the sample mean and n−1 standard deviation; the
// log-normal takes the same moments of ln(value). The percentile table is
// evaluated from the fitted quantile function at p10/p25/p50/p75/p90.
//
// Fails with ErrDistributionFit when a log-normal is requested for data with
// non-positive values, and with ErrDegenerateFit when the (possibly
// log-scale) variance is zero.
func FitDistribution(samples SampleSet, family Family) (DistributionResult, error) {
	values := samples.Values()

	switch family {
	case FamilyNormal:
		// keep values as-is
	case FamilyLogNormal:
		logs := make([]float64, len(values))
		for i, v := range values {
			if v <= 0 {
				return DistributionResult{}, fmt.Errorf("%w: log-normal requires positive values, sample year %d has %g; try the normal family",
					ErrDistributionFit, samples[i].Year, v)
			}
			logs[i] = math.Log(v)
		}
		values = logs
	default:
		return DistributionResult{}, fmt.Errorf("%w: unknown family %q", ErrDistributionFit, family)
	}

	mu, sigma := stat.MeanStdDev(values, nil)
	if sigma == 0 {
		return DistributionResult{}, fmt.Errorf("%w: zero variance, %s fit undefined", ErrDegenerateFit, family)
	}

	result := DistributionResult{
		SampleFingerprint: samples.Fingerprint(),
		Family:            family,
		Mu:                mu,
		Sigma:             sigma,
	}

	result.Percentiles = make([]Percentile, 0, len(percentileLevels))
	for _, level := range percentileLevels {
		result.Percentiles = append(result.Percentiles, Percentile{
			Level: level,
			Value: result.Quantile(float64(level) / 100),
		})
	}

	return result, nil
}
