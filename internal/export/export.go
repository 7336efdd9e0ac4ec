// Package export renders an AnalysisResult for download: a CSV of the yearly
// samples and a ZIP bundling the CSV with the full result as JSON.
//
// Every numeric field is written with strconv's shortest round-trip
// formatting ('g', precision -1), so parsing the output reproduces the exact
// float64 values.
package export

import (
	"archive/zip"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/atmosight/climate-insight-service/internal/domain"
)

// SamplesCSV renders the sample set as CSV with a year column and one value
// column labeled with the variable code and unit.
func SamplesCSV(result domain.AnalysisResult) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := []string{"year", fmt.Sprintf("%s [%s]", result.Query.Variable, result.Query.Variable.Unit())}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, s := range result.Samples {
		row := []string{strconv.Itoa(s.Year), formatFloat(s.Value)}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row for year %d: %w", s.Year, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// ResultJSON renders the full AnalysisResult as indented JSON. Go's JSON
// encoder already uses shortest round-trip float formatting.
func ResultJSON(result domain.AnalysisResult) ([]byte, error) {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return data, nil
}

// Archive bundles the samples CSV and the result JSON into one ZIP.
func Archive(result domain.AnalysisResult) ([]byte, error) {
	csvData, err := SamplesCSV(result)
	if err != nil {
		return nil, err
	}
	jsonData, err := ResultJSON(result)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range []struct {
		name string
		data []byte
	}{
		{"historical_data.csv", csvData},
		{"analysis.json", jsonData},
	} {
		w, err := zw.Create(f.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return nil, fmt.Errorf("write %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}

// formatFloat renders a float64 losslessly: parsing the result with
// strconv.ParseFloat yields the identical value.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
