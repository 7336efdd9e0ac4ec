package domain

import "errors"

// Analysis error kinds. Every failure in the pipeline wraps exactly one of
// these, so callers can classify with errors.Is regardless of the stage
// context added along the way.
var (
	// ErrMalformedRecord marks input data that cannot be trusted: an
	// unparsable date, or the same date reported twice with different values.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrInsufficientData marks a series or sample set with too little valid
	// history for any statistic to be meaningful. It is a user-visible "not
	// enough history" condition, never papered over with fabricated values.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateFit marks inputs on which an estimator is undefined:
	// fewer than two distinct years for a regression, or zero variance for
	// an exceedance probability.
	ErrDegenerateFit = errors.New("degenerate fit")

	// ErrDistributionFit marks a distribution family that is invalid for the
	// data domain, e.g. a log-normal requested for non-positive values.
	ErrDistributionFit = errors.New("distribution fit")

	// ErrInconsistentResult marks derived results that do not all originate
	// from the same sample set. It indicates a caller bug and is fatal.
	ErrInconsistentResult = errors.New("inconsistent result")
)
