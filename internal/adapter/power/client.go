// Package power fetches daily weather series from the NASA POWER temporal
// daily point API.
package power

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/atmosight/climate-insight-service/internal/domain"
)

// Client implements domain.SeriesFetcher against the POWER API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *slog.Logger
}

// NewClient creates a POWER API client. baseURL is the API origin, e.g.
// https://power.larc.nasa.gov.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		logger:  logger,
	}
}

// FetchDaily retrieves one variable's daily values for the requested
// coordinate and year range. Observations are returned date-ordered with
// POWER's missing sentinel preserved; validation happens in the normalizer.
func (c *Client) FetchDaily(ctx context.Context, req domain.SeriesRequest) ([]domain.RawObservation, error) {
	params := url.Values{
		"parameters": {string(req.Variable)},
		"community":  {"RE"},
		"longitude":  {fmt.Sprintf("%.4f", req.Lon)},
		"latitude":   {fmt.Sprintf("%.4f", req.Lat)},
		"start":      {fmt.Sprintf("%d0101", req.StartYear)},
		"end":        {fmt.Sprintf("%d1231", req.EndYear)},
		"format":     {"JSON"},
	}
	fullURL := c.baseURL + "/api/temporal/daily/point?" + params.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("power daily request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("power API error: status %d: %s", resp.StatusCode, body)
	}

	var powerResp response
	if err := json.NewDecoder(resp.Body).Decode(&powerResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	values, ok := powerResp.Properties.Parameter[string(req.Variable)]
	if !ok {
		return nil, fmt.Errorf("power response missing parameter %s", req.Variable)
	}

	dates := make([]string, 0, len(values))
	for d := range values {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	obs := make([]domain.RawObservation, 0, len(dates))
	for _, d := range dates {
		obs = append(obs, domain.RawObservation{Date: d, Value: values[d]})
	}

	c.logger.Debug("power series fetched",
		"variable", req.Variable,
		"lat", req.Lat,
		"lon", req.Lon,
		"years", fmt.Sprintf("%d-%d", req.StartYear, req.EndYear),
		"observations", len(obs),
	)
	return obs, nil
}

// Ping checks that the POWER API is reachable. Any response below 500 counts
// as reachable; a parameterless request legitimately returns 4xx.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/temporal/daily/point", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("power API unreachable: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // drain for connection reuse

	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("power API unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// POWER API response types. The daily point endpoint nests per-parameter
// maps of YYYYMMDD → value under properties.parameter.

type response struct {
	Properties properties `json:"properties"`
}

type properties struct {
	Parameter map[string]map[string]float64 `json:"parameter"`
}
