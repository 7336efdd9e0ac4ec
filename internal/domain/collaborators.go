package domain

import (
	"context"
	"errors"
)

// ErrLocationNotFound is returned by a Geocoder when the query matches no
// known place. There is no fallback coordinate; the caller decides how to
// surface the miss.
var ErrLocationNotFound = errors.New("location not found")

// GeocodingResult contains the coordinates resolved for a free-text location.
// The core treats the coordinates as an opaque series identifier; it performs
// no geodesic computation of its own.
type GeocodingResult struct {
	Lat         float64
	Lon         float64
	DisplayName string
}

// Geocoder resolves a free-text location query to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (GeocodingResult, error)
}

// SeriesRequest addresses one (location, variable) daily series over an
// inclusive range of calendar years.
type SeriesRequest struct {
	Lat       float64
	Lon       float64
	Variable  Variable
	StartYear int
	EndYear   int
}

// SeriesFetcher retrieves a raw daily series from the climate data provider.
// The fetch is the only blocking operation feeding the pipeline; the core
// itself performs no I/O.
type SeriesFetcher interface {
	FetchDaily(ctx context.Context, req SeriesRequest) ([]RawObservation, error)
}
