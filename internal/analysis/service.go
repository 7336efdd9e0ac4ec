// Package analysis orchestrates one climatology query: resolve coordinates,
// fetch the daily series, and run the statistical pipeline.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/atmosight/climate-insight-service/internal/domain"
	"github.com/atmosight/climate-insight-service/internal/observability"
)

// Options carries the analysis floors and defaults, normally taken from
// configuration.
type Options struct {
	StartYear         int     // first year of the fetched range
	MinValidPoints    int     // normalizer floor on valid daily records
	MinSampleYears    int     // selector floor on yearly samples
	DefaultWindowDays int     // selection window when the request leaves it unset
	MissingSentinel   float64 // provider's missing-value marker
}

// Request is one user query. Lat/Lon, WindowDays, and Family are optional;
// when Lat/Lon are unset the Location text is geocoded.
type Request struct {
	Location   string
	Lat        *float64
	Lon        *float64
	Variable   domain.Variable
	Month      time.Month
	Day        int
	WindowDays *int
	Family     *domain.Family
}

// Service runs analysis queries. It holds no per-query state: every call
// owns its own series and sample set, so independent queries may run
// concurrently without coordination.
type Service struct {
	fetcher  domain.SeriesFetcher
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
	clock    clockwork.Clock
	opts     Options
}

// New creates a Service. geocoder may be nil, in which case every request
// must carry explicit coordinates.
func New(fetcher domain.SeriesFetcher, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Service {
	return &Service{
		fetcher:  fetcher,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
		clock:    clockwork.NewRealClock(),
		opts:     opts,
	}
}

// WithClock swaps the time source used to resolve the current year. For tests.
func (s *Service) WithClock(c clockwork.Clock) *Service {
	s.clock = c
	return s
}

// CheckReadiness reports whether the upstream data provider is reachable.
func (s *Service) CheckReadiness(ctx context.Context) error {
	type pinger interface{ Ping(context.Context) error }
	if p, ok := s.fetcher.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Analyze runs the full pipeline for one request and returns its
// AnalysisResult. Every failure is deterministic for the given inputs and is
// surfaced, never retried; the wrapped error names the failing stage.
func (s *Service) Analyze(ctx context.Context, req Request) (domain.AnalysisResult, error) {
	start := time.Now()
	result, err := s.analyze(ctx, req)
	if err != nil {
		s.metrics.QueriesTotal.WithLabelValues(outcomeLabel(err)).Inc()
		return domain.AnalysisResult{}, err
	}

	s.metrics.QueriesTotal.WithLabelValues("ok").Inc()
	s.metrics.AnalysisDuration.Observe(time.Since(start).Seconds())
	s.metrics.SampleSetSize.Observe(float64(len(result.Samples)))

	s.logger.Info("analysis complete",
		"query_id", result.Query.ID,
		"variable", result.Query.Variable,
		"lat", result.Query.Lat,
		"lon", result.Query.Lon,
		"target_day", fmt.Sprintf("%02d-%02d", int(result.Query.Month), result.Query.Day),
		"sample_years", len(result.Samples),
		"slope", result.Trend.Slope,
		"trend", result.TrendDirection,
	)
	return result, nil
}

func (s *Service) analyze(ctx context.Context, req Request) (domain.AnalysisResult, error) {
	query, err := s.resolveQuery(ctx, req)
	if err != nil {
		return domain.AnalysisResult{}, err
	}

	fetchStart := time.Now()
	obs, err := s.fetcher.FetchDaily(ctx, domain.SeriesRequest{
		Lat:       query.Lat,
		Lon:       query.Lon,
		Variable:  query.Variable,
		StartYear: query.StartYear,
		EndYear:   query.EndYear,
	})
	if err != nil {
		s.metrics.FetchErrors.Inc()
		return domain.AnalysisResult{}, fmt.Errorf("fetch %s series for query %s: %w", query.Variable, query.ID, err)
	}
	s.metrics.FetchDuration.Observe(time.Since(fetchStart).Seconds())

	series, err := domain.NormalizeSeries(query.Variable, obs, s.opts.MissingSentinel, s.opts.MinValidPoints)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("normalize series for query %s: %w", query.ID, err)
	}

	samples, err := domain.SelectDayOfYear(series, query.Month, query.Day, query.WindowDays, s.opts.MinSampleYears)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("select day-of-year samples for query %s: %w", query.ID, err)
	}

	trend, err := domain.FitTrend(samples)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("fit trend for query %s: %w", query.ID, err)
	}

	family := query.Variable.DefaultFamily()
	if req.Family != nil {
		family = *req.Family
	}
	dist, err := domain.FitDistribution(samples, family)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("fit %s distribution for query %s: %w", family, query.ID, err)
	}

	extreme, err := domain.EstimateExtremes(samples, &dist)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("estimate extremes for query %s: %w", query.ID, err)
	}

	result, err := domain.Aggregate(query, samples, trend, extreme, dist)
	if err != nil {
		return domain.AnalysisResult{}, fmt.Errorf("aggregate results for query %s: %w", query.ID, err)
	}
	return result, nil
}

// resolveQuery fills in the query's coordinates and year range.
func (s *Service) resolveQuery(ctx context.Context, req Request) (domain.Query, error) {
	query := domain.Query{
		ID:         uuid.New(),
		Location:   req.Location,
		Variable:   req.Variable,
		Month:      req.Month,
		Day:        req.Day,
		WindowDays: s.opts.DefaultWindowDays,
		StartYear:  s.opts.StartYear,
		EndYear:    s.clock.Now().UTC().Year(),
	}
	if req.WindowDays != nil {
		query.WindowDays = *req.WindowDays
	}

	switch {
	case req.Lat != nil && req.Lon != nil:
		query.Lat, query.Lon = *req.Lat, *req.Lon
	case req.Location == "":
		return domain.Query{}, errors.New("request needs a location or explicit coordinates")
	case s.geocoder == nil:
		return domain.Query{}, errors.New("no geocoder configured; request must carry explicit coordinates")
	default:
		geo, err := s.geocoder.Geocode(ctx, req.Location)
		if err != nil {
			s.metrics.GeocodeRequests.WithLabelValues(geocodeOutcome(err)).Inc()
			return domain.Query{}, fmt.Errorf("geocode %q: %w", req.Location, err)
		}
		s.metrics.GeocodeRequests.WithLabelValues("success").Inc()
		query.Lat, query.Lon = geo.Lat, geo.Lon
		if geo.DisplayName != "" {
			query.Location = geo.DisplayName
		}
	}

	return query, nil
}

// outcomeLabel maps an analysis error onto the queries_total outcome label.
func outcomeLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientData):
		return "no_data"
	case errors.Is(err, domain.ErrDegenerateFit), errors.Is(err, domain.ErrDistributionFit):
		return "degenerate"
	case errors.Is(err, domain.ErrMalformedRecord):
		return "upstream_error"
	default:
		return "error"
	}
}

func geocodeOutcome(err error) string {
	if errors.Is(err, domain.ErrLocationNotFound) {
		return "not_found"
	}
	return "error"
}
