package domain

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// ExtremeResult describes how often the target day has historically crossed
// the μ+2σ extreme boundary.
type ExtremeResult struct {
	SampleFingerprint string `json:"sample_fingerprint"`

	Mean float64 `json:"mean"`

	// StdDev is the sample standard deviation with the n−1 denominator.
	StdDev float64 `json:"std_dev"`

	// Threshold is mean + 2·stddev, the conventional "notable extreme" boundary.
	Threshold float64 `json:"threshold"`

	// EmpiricalExceedance is the fraction of sample years whose value met or
	// exceeded the threshold.
	EmpiricalExceedance float64 `json:"empirical_exceedance"`

	// ModelExceedance is the survival probability 1−CDF(threshold) under the
	// fitted distribution, when one was supplied. Nil otherwise.
	ModelExceedance *float64 `json:"model_exceedance,omitempty"`
}

// EstimateExtremes computes the mean, the unbiased (n−1) standard deviation,
// the μ+2σ threshold, and the empirical probability of meeting or exceeding
// it. When dist is non-nil it must have been fitted from the same SampleSet
// (checked by fingerprint, ErrInconsistentResult otherwise) and contributes
// the model-based exceedance probability alongside the empirical one.
//
// Fails with ErrDegenerateFit when the standard deviation is zero: with no
// variance an exceedance probability is undefined, not 0 or 1.
func EstimateExtremes(samples SampleSet, dist *DistributionResult) (ExtremeResult, error) {
	values := samples.Values()
	if len(values) < 2 {
		// The n−1 stddev of a single value is NaN, not zero.
		return ExtremeResult{}, fmt.Errorf("%w: %d sample value(s), need at least 2 for a standard deviation",
			ErrDegenerateFit, len(values))
	}
	mean, stddev := stat.MeanStdDev(values, nil)
	if stddev == 0 {
		return ExtremeResult{}, fmt.Errorf("%w: all %d sample values are identical, exceedance probability undefined",
			ErrDegenerateFit, len(values))
	}

	threshold := mean + 2*stddev

	exceeding := 0
	for _, v := range values {
		if v >= threshold {
			exceeding++
		}
	}

	result := ExtremeResult{
		SampleFingerprint:   samples.Fingerprint(),
		Mean:                mean,
		StdDev:              stddev,
		Threshold:           threshold,
		EmpiricalExceedance: float64(exceeding) / float64(len(values)),
	}

	if dist != nil {
		if dist.SampleFingerprint != result.SampleFingerprint {
			return ExtremeResult{}, fmt.Errorf("%w: distribution fitted from sample set %s, extremes from %s",
				ErrInconsistentResult, dist.SampleFingerprint, result.SampleFingerprint)
		}
		p := dist.Survival(threshold)
		result.ModelExceedance = &p
	}

	return result, nil
}
