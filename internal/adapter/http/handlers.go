package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/atmosight/climate-insight-service/internal/analysis"
	"github.com/atmosight/climate-insight-service/internal/domain"
	"github.com/atmosight/climate-insight-service/internal/export"
)

func (s *Server) handleInsight(w http.ResponseWriter, r *http.Request) {
	req, err := parseInsightRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	req, err := parseInsightRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	archive, err := export.Archive(result)
	if err != nil {
		s.logger.Error("archive build failed", "query_id", result.Query.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to build archive"})
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="climate_insight.zip"`)
	w.WriteHeader(http.StatusOK)
	w.Write(archive) //nolint:errcheck // client may disconnect mid-download
}

// writeAnalysisError maps pipeline error kinds onto HTTP statuses. Data
// conditions (too little history, zero variance, family mismatch) are 422:
// the request was well-formed but no meaningful result exists for it.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInsufficientData),
		errors.Is(err, domain.ErrDegenerateFit),
		errors.Is(err, domain.ErrDistributionFit):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrLocationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrMalformedRecord):
		// The upstream provider sent data we refuse to analyze.
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("analysis failed", "error", err)
	} else {
		s.logger.Warn("analysis rejected", "status", status, "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parseInsightRequest validates the query parameters shared by the insight
// and export endpoints.
func parseInsightRequest(r *http.Request) (analysis.Request, error) {
	q := r.URL.Query()

	variable, err := domain.ParseVariable(q.Get("variable"))
	if err != nil {
		return analysis.Request{}, err
	}

	month, err := strconv.Atoi(q.Get("month"))
	if err != nil || month < 1 || month > 12 {
		return analysis.Request{}, fmt.Errorf("month must be 1-12, got %q", q.Get("month"))
	}
	day, err := strconv.Atoi(q.Get("day"))
	if err != nil || day < 1 || day > 31 {
		return analysis.Request{}, fmt.Errorf("day must be 1-31, got %q", q.Get("day"))
	}
	// 2000 is a leap year, so Feb 29 is accepted while Feb 30 or Apr 31 are
	// caught here instead of surfacing mid-analysis.
	if probe := time.Date(2000, time.Month(month), day, 0, 0, 0, 0, time.UTC); int(probe.Month()) != month || probe.Day() != day {
		return analysis.Request{}, fmt.Errorf("day %d does not exist in month %d", day, month)
	}

	req := analysis.Request{
		Location: q.Get("location"),
		Variable: variable,
		Month:    time.Month(month),
		Day:      day,
	}

	latStr, lonStr := q.Get("lat"), q.Get("lon")
	if (latStr == "") != (lonStr == "") {
		return analysis.Request{}, errors.New("lat and lon must be supplied together")
	}
	if latStr != "" {
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil || lat < -90 || lat > 90 {
			return analysis.Request{}, fmt.Errorf("invalid lat %q", latStr)
		}
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil || lon < -180 || lon > 180 {
			return analysis.Request{}, fmt.Errorf("invalid lon %q", lonStr)
		}
		req.Lat, req.Lon = &lat, &lon
	}
	if req.Location == "" && req.Lat == nil {
		return analysis.Request{}, errors.New("request needs a location or lat/lon")
	}

	if ws := q.Get("window"); ws != "" {
		window, err := strconv.Atoi(ws)
		if err != nil || window < 0 || window > 15 {
			return analysis.Request{}, fmt.Errorf("window must be 0-15 days, got %q", ws)
		}
		req.WindowDays = &window
	}

	if fs := q.Get("family"); fs != "" {
		family, err := domain.ParseFamily(fs)
		if err != nil {
			return analysis.Request{}, err
		}
		req.Family = &family
	}

	return req, nil
}
