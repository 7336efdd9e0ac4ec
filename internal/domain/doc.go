// Package domain models daily weather records and the climatological
// analysis derived from them.
//
// # Data Source
//
// Daily series come from the NASA POWER temporal daily point API,
// https://power.larc.nasa.gov/api/temporal/daily/point. The fetch adapter
// requests one variable for one coordinate over a multi-decade range and
// hands the raw observations to [NormalizeSeries]. POWER encodes dates as
// YYYYMMDD strings and missing values as the sentinel -999.
//
// # Variables
//
// POWER parameter codes, with units:
//
//	T2M                 temperature at 2m        °C
//	PRECTOTCORR         corrected precipitation  mm/day
//	WS2M                wind speed at 2m         m/s
//	RH2M                relative humidity at 2m  %
//	ALLSKY_SFC_SW_DWN   surface solar radiation  kWh/m²/day
//
// # Analysis Pipeline
//
// A query names a location, a variable, and one calendar day. The pipeline
// is a chain of pure functions over immutable values:
//
//	raw observations
//	  → NormalizeSeries   validated, date-sorted TimeSeries
//	  → SelectDayOfYear   one sample per year (mean over a ±window of days)
//	  → FitTrend          OLS of value on calendar year
//	  → FitDistribution   normal or log-normal fit, percentile table
//	  → EstimateExtremes  mean, n−1 stddev, μ+2σ exceedance probability
//	  → Aggregate         one AnalysisResult for the presentation layer
//
// Standard deviations use the n−1 (unbiased) denominator throughout; the
// choice changes numeric output, so it is fixed here rather than left to
// callers. Distribution parameters are estimated by the method of moments
// (log-normal on the log scale).
//
// # Sample Fingerprints
//
// Every derived result carries a SHA-256 fingerprint of the SampleSet it was
// computed from. [Aggregate] refuses to combine results with mismatched
// fingerprints, so a caller cannot accidentally pair a trend from one query
// with a distribution from another. See [SampleSet.Fingerprint].
//
// # Errors
//
// All failures are deterministic functions of the input and are never
// retried: [ErrMalformedRecord], [ErrInsufficientData], [ErrDegenerateFit],
// [ErrDistributionFit], [ErrInconsistentResult]. Each is wrapped with the
// failing stage's context before it reaches the caller.
package domain
